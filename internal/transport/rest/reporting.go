package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reportingports "github.com/voltshop/storefront-api/internal/domains/reporting/ports"
	"github.com/voltshop/storefront-api/internal/shared/problem"
)

// DashboardAPI wires HTTP transport with the reporting service.
type DashboardAPI struct {
	service   reportingports.Service
	responder *problem.Responder
}

func NewDashboardAPI(service reportingports.Service, responder *problem.Responder) DashboardAPI {
	return DashboardAPI{service: service, responder: responder}
}

// Get /api/dashboard
// Admin reporting: summary buckets, monthly series, recent orders
func (api *DashboardAPI) Dashboard(c *gin.Context) {
	dashboard, err := api.service.Dashboard(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDashboard(dashboard))
}
