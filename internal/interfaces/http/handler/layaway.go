package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	layawayapp "github.com/movilshop/backend/internal/application/layaway"
	"github.com/movilshop/backend/internal/interfaces/http/dto"
	"github.com/movilshop/backend/internal/interfaces/http/middleware"
)

// LayawayHandler handles layaway plan endpoints
type LayawayHandler struct {
	BaseHandler
	planService *layawayapp.PlanService
}

// NewLayawayHandler creates a new LayawayHandler
func NewLayawayHandler(planService *layawayapp.PlanService) *LayawayHandler {
	return &LayawayHandler{planService: planService}
}

// RegisterRoutes registers layaway routes
func (h *LayawayHandler) RegisterRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/layaway-plans")
	{
		plans.POST("", h.Create)
		plans.GET("", h.List)
		plans.GET("/overdue", h.ListOverdue)
		plans.GET("/:id", h.Get)
		plans.POST("/:id/payments", h.RecordPayment)
		plans.POST("/:id/cancel", h.Cancel)
	}
}

// Create opens a layaway plan, reserving the listed merchandise
func (h *LayawayHandler) Create(c *gin.Context) {
	receivedBy, err := uuid.Parse(middleware.GetJWTUserID(c))
	if err != nil {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req layawayapp.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), receivedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, plan)
}

// List returns plans with pagination
func (h *LayawayHandler) List(c *gin.Context) {
	var filter layawayapp.PlanListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	plans, total, err := h.planService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, plans, dto.NewMeta(page, pageSize, total))
}

// ListOverdue returns active plans past their due date
func (h *LayawayHandler) ListOverdue(c *gin.Context) {
	plans, err := h.planService.ListOverdue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plans)
}

// Get returns a single plan with its payment history and balance
func (h *LayawayHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	plan, err := h.planService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// RecordPayment adds an installment; the plan completes automatically when
// the balance reaches zero
func (h *LayawayHandler) RecordPayment(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	receivedBy, err := uuid.Parse(middleware.GetJWTUserID(c))
	if err != nil {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req layawayapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	plan, err := h.planService.RecordPayment(c.Request.Context(), id, receivedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// Cancel voids a plan and restores its reserved stock
func (h *LayawayHandler) Cancel(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req layawayapp.CancelPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cancel reason is required")
		return
	}

	plan, err := h.planService.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}
