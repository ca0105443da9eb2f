// internal/handlers/dashboard/dashboard.go
package dashboard

import (
	"net/http"

	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/dashboard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const MsgDashboardFailed = "Failed to load dashboard data"

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetDashboard returns the summary figures shown on the dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		h.logger.Error("dashboard summary failed", zap.Error(err))
		response.InternalError(c, MsgDashboardFailed)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard data fetched successfully", summary)
}
