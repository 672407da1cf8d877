package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/catalog"
	"github.com/movilshop/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the request to register a product
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Code          string          `json:"code" binding:"required"`
	Brand         string          `json:"brand"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	PurchasePrice decimal.Decimal `json:"purchase_price" binding:"required"`
	SalePrice     decimal.Decimal `json:"sale_price" binding:"required"`
	InitialStock  int64           `json:"initial_stock"`
	MinStock      int64           `json:"min_stock"`
}

// UpdateProductRequest is the request to update product details
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
	MinStock    *int64 `json:"min_stock"`
}

// ChangePricesRequest updates both prices, snapshotting the previous ones
type ChangePricesRequest struct {
	PurchasePrice decimal.Decimal `json:"purchase_price" binding:"required"`
	SalePrice     decimal.Decimal `json:"sale_price" binding:"required"`
}

// AdjustStockRequest sets the counted stock level after a physical count
type AdjustStockRequest struct {
	NewStock int64  `json:"new_stock"`
	Note     string `json:"note"`
}

// ProductResponse is the full product view
type ProductResponse struct {
	ID                    uuid.UUID       `json:"id"`
	Name                  string          `json:"name"`
	Code                  string          `json:"code"`
	Brand                 string          `json:"brand"`
	Category              string          `json:"category"`
	Description           string          `json:"description"`
	Stock                 int64           `json:"stock"`
	MinStock              int64           `json:"min_stock"`
	LowStock              bool            `json:"low_stock"`
	PurchasePrice         decimal.Decimal `json:"purchase_price"`
	SalePrice             decimal.Decimal `json:"sale_price"`
	PreviousPurchasePrice decimal.Decimal `json:"previous_purchase_price"`
	PreviousSalePrice     decimal.Decimal `json:"previous_sale_price"`
	Active                bool            `json:"active"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// MovementResponse is one entry of a product's stock movement history
type MovementResponse struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Type         string    `json:"type"`
	Quantity     int64     `json:"quantity"`
	StockAfter   int64     `json:"stock_after"`
	ReferenceID  uuid.UUID `json:"reference_id"`
	ReferenceDoc string    `json:"reference_doc"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
}

// MovementListFilter carries movement history query parameters
type MovementListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Type     string `form:"type"`
}

// ProductListFilter carries list query parameters
type ProductListFilter struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir"`
	Search     string `form:"search"`
	OnlyActive bool   `form:"only_active"`
}

// ToProductResponse converts a product aggregate to its response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                    p.ID,
		Name:                  p.Name,
		Code:                  p.Code,
		Brand:                 p.Brand,
		Category:              p.Category,
		Description:           p.Description,
		Stock:                 p.Stock,
		MinStock:              p.MinStock,
		LowStock:              p.IsLowStock(),
		PurchasePrice:         p.PurchasePrice.Decimal(),
		SalePrice:             p.SalePrice.Decimal(),
		PreviousPurchasePrice: p.PreviousPurchasePrice.Decimal(),
		PreviousSalePrice:     p.PreviousSalePrice.Decimal(),
		Active:                p.Active,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

// ToMovementResponse converts a stock movement to its response DTO
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		ProductName:  m.ProductName,
		Type:         string(m.Type),
		Quantity:     m.Quantity,
		StockAfter:   m.StockAfter,
		ReferenceID:  m.ReferenceID,
		ReferenceDoc: m.ReferenceDoc,
		Note:         m.Note,
		CreatedAt:    m.CreatedAt,
	}
}
