package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the per-context APIs mounted by the router.
type Handlers struct {
	Accounts  AccountsAPI
	Products  ProductsAPI
	Orders    OrdersAPI
	Dashboard DashboardAPI
	Auth      *AuthMiddleware
}

// NewRouter mounts the storefront route table under /api. Authentication and
// the admin gate are middleware; ownership checks live in the services.
// Extra middleware (tracing, request logging) must be passed here so it is
// registered before the routes and joins every handler chain.
func NewRouter(h Handlers, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "storefront api running"})
	})

	api := router.Group("/api")

	users := api.Group("/users")
	{
		users.POST("", h.Accounts.Register)
		users.POST("/login", h.Accounts.Login)
		users.GET("/profile", h.Auth.Authenticate(), h.Accounts.Profile)
		users.PUT("/profile", h.Auth.Authenticate(), h.Accounts.UpdateProfile)
		users.GET("", h.Auth.Authenticate(), h.Auth.RequireAdmin(), h.Accounts.List)
		users.DELETE("/:id", h.Auth.Authenticate(), h.Auth.RequireAdmin(), h.Accounts.Delete)
		users.PUT("/:id/role", h.Auth.Authenticate(), h.Auth.RequireAdmin(), h.Accounts.SetRole)
	}

	products := api.Group("/products")
	{
		products.GET("", h.Products.List)
		products.GET("/homepage", h.Products.Homepage)
		products.GET("/:id", h.Products.Get)
		products.POST("", h.Auth.Authenticate(), h.Auth.RequireAdmin(), h.Products.Create)
		products.PUT("/:id", h.Auth.Authenticate(), h.Auth.RequireAdmin(), h.Products.Update)
		products.DELETE("/:id", h.Auth.Authenticate(), h.Auth.RequireAdmin(), h.Products.Delete)
		products.POST("/:id/reviews", h.Auth.Authenticate(), h.Products.AddReview)
	}

	orders := api.Group("/orders", h.Auth.Authenticate())
	{
		orders.POST("", h.Orders.Place)
		orders.GET("/myorders", h.Orders.ListMine)
		orders.GET("", h.Auth.RequireAdmin(), h.Orders.ListAll)
		orders.GET("/:id", h.Orders.Get)
		orders.PUT("/:id/pay", h.Orders.ConfirmPayment)
		orders.PUT("/:id/deliver", h.Auth.RequireAdmin(), h.Orders.ConfirmDelivery)
	}

	api.GET("/dashboard", h.Auth.Authenticate(), h.Auth.RequireAdmin(), h.Dashboard.Dashboard)

	return router
}
