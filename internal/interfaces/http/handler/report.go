package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/invento/backend/internal/application/report"
)

// ReportHandler serves inventory report export and summary endpoints
type ReportHandler struct {
	BaseHandler
	service *report.ReportService
}

// NewReportHandler creates a report handler
func NewReportHandler(service *report.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers report routes on the given group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports", h.List)
	reports := rg.Group("/reports/inventory")
	{
		reports.GET("/download", h.Download)
		reports.GET("/summary", h.Summary)
	}
}

// List handles GET /reports, describing the available reports
func (h *ReportHandler) List(c *gin.Context) {
	h.Success(c, []gin.H{
		{
			"name":     "inventory",
			"formats":  []string{report.FormatCSV, report.FormatXLSX},
			"download": "/api/v1/reports/inventory/download",
			"summary":  "/api/v1/reports/inventory/summary",
			"filters":  []string{"start_date", "end_date", "status"},
		},
	})
}

// Download handles GET /reports/inventory/download. The file_format query
// parameter selects csv (default) or xlsx.
func (h *ReportHandler) Download(c *gin.Context) {
	query, err := report.ParseQuery(
		c.Query("start_date"),
		c.Query("end_date"),
		c.Query("status"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	format := c.DefaultQuery("file_format", "csv")
	file, err := h.service.Download(c.Request.Context(), format, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(200, file.ContentType, file.Data)
}

// Summary handles GET /reports/inventory/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	query, err := report.ParseQuery(
		c.Query("start_date"),
		c.Query("end_date"),
		c.Query("status"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
