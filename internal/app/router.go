// internal/app/router.go
package app

import (
	"net/http"

	addressHandler "crm-service/internal/handlers/address"
	customerHandler "crm-service/internal/handlers/customer"
	dashboardHandler "crm-service/internal/handlers/dashboard"
	healthHandler "crm-service/internal/handlers/health"
	"crm-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const MsgRouteNotFound = "Route not found"

type Handlers struct {
	CustomerHandler  *customerHandler.CustomerHandler
	AddressHandler   *addressHandler.AddressHandler
	DashboardHandler *dashboardHandler.DashboardHandler
	HealthHandler    *healthHandler.HealthHandler
	MetricsHandler   http.Handler // nil disables /metrics
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api")

	// ==================== Health Check ====================
	api.GET("/health", h.HealthHandler.Check)

	// ==================== Customers ====================
	customers := api.Group("/customers")
	{
		customers.POST("", h.CustomerHandler.CreateCustomer)
		customers.GET("", h.CustomerHandler.ListCustomers)
		customers.GET("/search", h.CustomerHandler.SearchByLocation)
		customers.GET("/:id", h.CustomerHandler.GetCustomer)
		customers.PUT("/:id", h.CustomerHandler.UpdateCustomer)
		customers.DELETE("/:id", h.CustomerHandler.DeleteCustomer)
	}

	// ==================== Addresses ====================
	addresses := api.Group("/addresses")
	{
		addresses.POST("", h.AddressHandler.CreateAddress)
		addresses.GET("/multiple", h.AddressHandler.ListCustomersWithMultipleAddresses)
		addresses.GET("/customer/:customerId", h.AddressHandler.ListByCustomer)
		addresses.GET("/:id", h.AddressHandler.GetAddress)
		addresses.PUT("/:id", h.AddressHandler.UpdateAddress)
		addresses.DELETE("/:id", h.AddressHandler.DeleteAddress)
	}

	// ==================== Dashboard ====================
	api.GET("/dashboard", h.DashboardHandler.GetDashboard)

	// ==================== Metrics ====================
	if h.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(h.MetricsHandler))
	}

	r.NoRoute(func(c *gin.Context) {
		logger.Debug("route not found", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
		response.NotFound(c, MsgRouteNotFound)
	})
}
