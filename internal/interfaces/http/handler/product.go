package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/movilshop/backend/internal/application/catalog"
	"github.com/movilshop/backend/internal/domain/identity"
	"github.com/movilshop/backend/internal/interfaces/http/dto"
	"github.com/movilshop/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers product routes. Reads are open to all staff;
// writes are restricted to admins.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/low-stock", h.ListLowStock)
		products.GET("/code/:code", h.GetByCode)
		products.GET("/:id", h.Get)
		products.GET("/:id/movements", h.ListMovements)
	}

	admin := rg.Group("/products", middleware.RequireRole(string(identity.RoleAdmin)))
	{
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.PUT("/:id/prices", h.ChangePrices)
		admin.POST("/:id/adjust-stock", h.AdjustStock)
		admin.POST("/:id/deactivate", h.Deactivate)
		admin.POST("/:id/activate", h.Activate)
	}
}

// Create registers a new product
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// List returns products with pagination
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, products, dto.NewMeta(page, pageSize, total))
}

// ListLowStock returns active products at or below their minimum stock
func (h *ProductHandler) ListLowStock(c *gin.Context) {
	products, err := h.productService.ListLowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// ListMovements returns a product's stock movement history
func (h *ProductHandler) ListMovements(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var filter catalogapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	movements, err := h.productService.ListMovements(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}

// Get returns a single product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// GetByCode returns a single product by its short code
func (h *ProductHandler) GetByCode(c *gin.Context) {
	product, err := h.productService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Update changes a product's descriptive fields
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ChangePrices updates both prices, snapshotting the previous ones
func (h *ProductHandler) ChangePrices(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.ChangePricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Both purchase and sale prices are required")
		return
	}

	product, err := h.productService.ChangePrices(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// AdjustStock sets the counted stock level after a physical count
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid stock adjustment payload")
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Deactivate removes a product from active sale
func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Product deactivated"})
}

// Activate returns a product to active sale
func (h *ProductHandler) Activate(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Activate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Product activated"})
}
