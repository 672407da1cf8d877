package handler

import (
	"github.com/gin-gonic/gin"

	purchasingapp "github.com/movilshop/backend/internal/application/purchasing"
	"github.com/movilshop/backend/internal/domain/identity"
	"github.com/movilshop/backend/internal/interfaces/http/dto"
	"github.com/movilshop/backend/internal/interfaces/http/middleware"
)

// PurchaseHandler handles supplier purchase and purchase return endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *purchasingapp.PurchaseService
	returnService   *purchasingapp.PurchaseReturnService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(
	purchaseService *purchasingapp.PurchaseService,
	returnService *purchasingapp.PurchaseReturnService,
) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		returnService:   returnService,
	}
}

// RegisterRoutes registers purchase routes. Recording purchases and returns
// changes product costs, so it is admin-only; reads are open to all staff.
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	{
		purchases.GET("", h.List)
		purchases.GET("/number/:number", h.GetByNumber)
		purchases.GET("/:id", h.Get)
		purchases.GET("/:id/returns", h.ListReturns)
		purchases.GET("/:id/returns/:returnId", h.GetReturn)
	}

	admin := rg.Group("/purchases", middleware.RequireRole(string(identity.RoleAdmin)))
	{
		admin.POST("", h.Create)
		admin.POST("/:id/returns/validate", h.ValidateReturn)
		admin.POST("/:id/returns", h.CreateReturn)
	}
}

// Create records a new supplier purchase, updating stock and costs
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req purchasingapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	purchase, err := h.purchaseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// List returns purchases with pagination
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter purchasingapp.PurchaseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	purchases, total, err := h.purchaseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, purchases, dto.NewMeta(page, pageSize, total))
}

// Get returns a purchase with its items, return history and net cost
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// GetByNumber returns a purchase by its document number
func (h *PurchaseHandler) GetByNumber(c *gin.Context) {
	purchase, err := h.purchaseService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// ValidateReturn dry-runs a proposed return against the purchase's remaining
// returnable quantities without recording anything
func (h *PurchaseHandler) ValidateReturn(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req purchasingapp.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.returnService.Validate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CreateReturn records a return against a purchase, restoring refundable
// cost and removing the returned units from stock
func (h *PurchaseHandler) CreateReturn(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req purchasingapp.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ret, err := h.returnService.Create(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ret)
}

// ListReturns returns a purchase's full return history
func (h *PurchaseHandler) ListReturns(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	returns, err := h.returnService.ListReturns(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, returns)
}

// GetReturn returns a single recorded return
func (h *PurchaseHandler) GetReturn(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	returnID, ok := uuidParam(c, "returnId")
	if !ok {
		return
	}

	ret, err := h.returnService.GetReturn(c.Request.Context(), id, returnID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}
