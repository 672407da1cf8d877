package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/movilshop/backend/internal/application/sales"
	"github.com/movilshop/backend/internal/interfaces/http/dto"
	"github.com/movilshop/backend/internal/interfaces/http/middleware"
)

// SaleHandler handles counter sale endpoints
type SaleHandler struct {
	BaseHandler
	saleService *salesapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *salesapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// RegisterRoutes registers sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Create)
		sales.GET("", h.List)
		sales.GET("/number/:number", h.GetByNumber)
		sales.GET("/:id", h.Get)
	}
}

// Create rings up a sale, deducting stock for each line
func (h *SaleHandler) Create(c *gin.Context) {
	soldBy, err := uuid.Parse(middleware.GetJWTUserID(c))
	if err != nil {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req salesapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), soldBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// List returns sales with pagination
func (h *SaleHandler) List(c *gin.Context) {
	var filter salesapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	sales, total, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, sales, dto.NewMeta(page, pageSize, total))
}

// Get returns a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// GetByNumber returns a sale by its document number
func (h *SaleHandler) GetByNumber(c *gin.Context) {
	sale, err := h.saleService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}
