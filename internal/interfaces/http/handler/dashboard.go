package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/invento/backend/internal/application/report"
)

// DashboardHandler serves the dashboard aggregates endpoint
type DashboardHandler struct {
	BaseHandler
	service *report.DashboardService
}

// NewDashboardHandler creates a dashboard handler
func NewDashboardHandler(service *report.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers dashboard routes on the given group
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/stats", h.Stats)
}

// Stats handles GET /dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
