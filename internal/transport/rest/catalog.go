package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/voltshop/storefront-api/internal/domains/catalog/domain"
	catalogports "github.com/voltshop/storefront-api/internal/domains/catalog/ports"
	"github.com/voltshop/storefront-api/internal/shared/problem"
)

// ProductsAPI wires HTTP transport with the catalog bounded context service.
type ProductsAPI struct {
	service   catalogports.Service
	responder *problem.Responder
}

// NewProductsAPI creates a ProductsAPI backed by the provided service.
func NewProductsAPI(service catalogports.Service, responder *problem.Responder) ProductsAPI {
	return ProductsAPI{service: service, responder: responder}
}

// Get /api/products
// Browse the catalog with keyword search, brand filters, and paging
func (api *ProductsAPI) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	result, err := api.service.List(c.Request.Context(), catalogports.ListFilter{
		Keyword: c.Query("keyword"),
		Brands:  c.QueryArray("brand"),
		Page:    page,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, productPageResponse{
		Products: fromProductList(result.Products),
		Page:     result.Page,
		Pages:    result.Pages,
	})
}

// Get /api/products/homepage
// New arrivals, best sellers, and featured picks for the landing page
func (api *ProductsAPI) Homepage(c *gin.Context) {
	lists, err := api.service.Homepage(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, homepageResponse{
		NewArrivals: fromProductList(lists.NewArrivals),
		BestSellers: fromProductList(lists.BestSellers),
		Featured:    fromProductList(lists.Featured),
	})
}

// Get /api/products/:id
// Product detail with embedded reviews
func (api *ProductsAPI) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	product, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProduct(product))
}

// Post /api/products
// Create a placeholder product for subsequent editing (admin)
func (api *ProductsAPI) Create(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		api.responder.Respond(c, problem.Authentication)
		return
	}
	product, err := api.service.CreatePlaceholder(c.Request.Context(), account.ID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromProduct(product))
}

type productUpdateRequest struct {
	Name         string        `json:"name"`
	Price        *float64      `json:"price"`
	Description  string        `json:"description"`
	Image        string        `json:"image"`
	Gallery      []string      `json:"gallery"`
	Brand        string        `json:"brand"`
	Category     string        `json:"category"`
	CountInStock *int          `json:"countInStock"`
	Specs        *specsPayload `json:"specs"`
	Featured     bool          `json:"featured"`
}

// Put /api/products/:id
// Edit product fields (admin)
func (api *ProductsAPI) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	var payload productUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, problem.BadRequest.WithDetail(err.Error()))
		return
	}
	update := catalogports.ProductUpdate{
		Name:         payload.Name,
		Price:        payload.Price,
		Description:  payload.Description,
		Image:        payload.Image,
		Gallery:      payload.Gallery,
		Brand:        payload.Brand,
		Category:     payload.Category,
		CountInStock: payload.CountInStock,
		Featured:     payload.Featured,
	}
	if payload.Specs != nil {
		update.Specs = &catalogdomain.Specs{
			Processor:  payload.Specs.Processor,
			RAM:        payload.Specs.RAM,
			ScreenSize: payload.Specs.ScreenSize,
			Battery:    payload.Specs.Battery,
		}
	}
	product, err := api.service.Update(c.Request.Context(), id, update)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProduct(product))
}

// Delete /api/products/:id
// Remove a product (admin)
func (api *ProductsAPI) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Post /api/products/:id/reviews
// Add a review; one per account per product
func (api *ProductsAPI) AddReview(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		api.responder.Respond(c, problem.Authentication)
		return
	}
	id, ok := parseUUIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	var payload reviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, problem.BadRequest.WithDetail(err.Error()))
		return
	}
	product, err := api.service.AddReview(c.Request.Context(), id, catalogports.ReviewInput{
		AccountID:    account.ID,
		ReviewerName: account.Name,
		Rating:       payload.Rating,
		Comment:      payload.Comment,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromProduct(product))
}
