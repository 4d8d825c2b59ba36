package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountports "github.com/voltshop/storefront-api/internal/domains/accounts/ports"
	"github.com/voltshop/storefront-api/internal/shared/problem"
)

// AccountsAPI wires HTTP transport with the accounts bounded context service.
type AccountsAPI struct {
	service   accountports.Service
	responder *problem.Responder
}

// NewAccountsAPI creates an AccountsAPI backed by the provided service.
func NewAccountsAPI(service accountports.Service, responder *problem.Responder) AccountsAPI {
	return AccountsAPI{service: service, responder: responder}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Post /api/users
// Register a new account
func (api *AccountsAPI) Register(c *gin.Context) {
	var payload registerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, problem.BadRequest.WithDetail(err.Error()))
		return
	}
	session, err := api.service.Register(c.Request.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromAccount(session.Account, session.Token))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Post /api/users/login
// Exchange credentials for a bearer token
func (api *AccountsAPI) Login(c *gin.Context) {
	var payload loginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, problem.BadRequest.WithDetail(err.Error()))
		return
	}
	session, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromAccount(session.Account, session.Token))
}

// Get /api/users/profile
// Return the authenticated account
func (api *AccountsAPI) Profile(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		api.responder.Respond(c, problem.Authentication)
		return
	}
	c.JSON(http.StatusOK, fromAccount(account, ""))
}

type profileUpdateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Put /api/users/profile
// Update the authenticated account's profile
func (api *AccountsAPI) UpdateProfile(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		api.responder.Respond(c, problem.Authentication)
		return
	}
	var payload profileUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, problem.BadRequest.WithDetail(err.Error()))
		return
	}
	updated, err := api.service.UpdateProfile(c.Request.Context(), account.ID, accountports.ProfileUpdate{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromAccount(updated, ""))
}

// Get /api/users
// List all accounts (admin)
func (api *AccountsAPI) List(c *gin.Context) {
	accounts, err := api.service.List(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromAccountList(accounts))
}

type roleRequest struct {
	IsAdmin bool `json:"isAdmin"`
}

// Put /api/users/:id/role
// Grant or revoke the admin role (admin)
func (api *AccountsAPI) SetRole(c *gin.Context) {
	id, ok := parseUUIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	var payload roleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, problem.BadRequest.WithDetail(err.Error()))
		return
	}
	updated, err := api.service.SetRole(c.Request.Context(), id, payload.IsAdmin)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromAccount(updated, ""))
}

// Delete /api/users/:id
// Delete an account (admin, not your own)
func (api *AccountsAPI) Delete(c *gin.Context) {
	actor, ok := currentAccount(c)
	if !ok {
		api.responder.Respond(c, problem.Authentication)
		return
	}
	id, ok := parseUUIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), actor.ID, id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseUUIDParam(c *gin.Context, responder *problem.Responder, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		responder.Respond(c, problem.BadRequest.WithDetail("invalid "+name+" parameter"))
		return uuid.Nil, false
	}
	return id, true
}
