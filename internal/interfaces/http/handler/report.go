package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/movilshop/backend/internal/application/report"
	"github.com/movilshop/backend/internal/domain/identity"
	"github.com/movilshop/backend/internal/interfaces/http/dto"
	"github.com/movilshop/backend/internal/interfaces/http/middleware"
)

// ReportHandler handles reporting endpoints; all of them are admin-only
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports", middleware.RequireRole(string(identity.RoleAdmin)))
	{
		reports.GET("/dashboard", h.Dashboard)
		reports.GET("/purchase-costs", h.PurchaseCosts)
		reports.GET("/sales-summary", h.SalesSummary)
	}
}

// Dashboard returns the daily overview
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// PurchaseCosts returns procurement spend net of supplier returns for a period
func (h *ReportHandler) PurchaseCosts(c *gin.Context) {
	from, to, ok := h.bindDateRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.PurchaseCosts(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// SalesSummary returns total revenue for a period
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	from, to, ok := h.bindDateRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.SalesSummary(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// bindDateRange parses the from/to query range. Dates may be given as
// 2006-01-02 or full RFC 3339 timestamps; the default range is the current
// month up to now.
func (h *ReportHandler) bindDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	var query dto.DateRangeRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return time.Time{}, time.Time{}, false
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now

	if query.From != "" {
		parsed, err := parseDate(query.From)
		if err != nil {
			h.BadRequest(c, "Invalid 'from' date")
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if query.To != "" {
		parsed, err := parseDate(query.To)
		if err != nil {
			h.BadRequest(c, "Invalid 'to' date")
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}

	if !to.After(from) {
		h.BadRequest(c, "'to' must be after 'from'")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
