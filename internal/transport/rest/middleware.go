package rest

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	accountdomain "github.com/voltshop/storefront-api/internal/domains/accounts/domain"
	accountports "github.com/voltshop/storefront-api/internal/domains/accounts/ports"
	orderports "github.com/voltshop/storefront-api/internal/domains/orders/ports"
	"github.com/voltshop/storefront-api/internal/shared/problem"
)

const accountContextKey = "rest.account"

// AuthMiddleware resolves bearer tokens to accounts and gates admin routes.
type AuthMiddleware struct {
	tokens    accountports.TokenIssuer
	accounts  accountports.Service
	responder *problem.Responder
}

func NewAuthMiddleware(tokens accountports.TokenIssuer, accounts accountports.Service, responder *problem.Responder) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, accounts: accounts, responder: responder}
}

// Authenticate extracts the bearer token, verifies it, and loads the subject
// account onto the request context. The three failure modes are reported
// distinctly so clients can tell a stale token from a deleted account.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			m.responder.Respond(c, problem.Authentication.WithDetail("missing bearer token"))
			c.Abort()
			return
		}
		accountID, err := m.tokens.Verify(raw)
		if err != nil {
			m.responder.Respond(c, problem.Authentication.WithDetail("invalid or expired token"))
			c.Abort()
			return
		}
		account, err := m.accounts.GetByID(c.Request.Context(), accountID)
		if err != nil {
			if errors.Is(err, accountports.ErrNotFound) {
				m.responder.Respond(c, problem.Authentication.WithDetail("token subject no longer exists"))
			} else {
				m.responder.RespondError(c, err)
			}
			c.Abort()
			return
		}
		c.Set(accountContextKey, account)
		c.Next()
	}
}

// RequireAdmin rejects authenticated non-admin callers. Must run after
// Authenticate.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := currentAccount(c)
		if !ok {
			m.responder.Respond(c, problem.Authentication)
			c.Abort()
			return
		}
		if !account.Admin {
			m.responder.Respond(c, problem.Authorization.WithDetail("admin role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}

func currentAccount(c *gin.Context) (*accountdomain.Account, bool) {
	value, ok := c.Get(accountContextKey)
	if !ok {
		return nil, false
	}
	account, ok := value.(*accountdomain.Account)
	return account, ok
}

func currentActor(c *gin.Context) (orderports.Actor, bool) {
	account, ok := currentAccount(c)
	if !ok {
		return orderports.Actor{}, false
	}
	return orderports.Actor{AccountID: account.ID, Admin: account.Admin}, true
}
