package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest is the request to ring up a counter sale
type CreateSaleRequest struct {
	Items         []CreateSaleItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod sales.PaymentMethod     `json:"payment_method" binding:"required"`
	CustomerName  string                  `json:"customer_name"`
	Discount      *decimal.Decimal        `json:"discount"`
	Notes         string                  `json:"notes"`
}

// CreateSaleItemRequest is one line of a sale. The sale price comes from the
// product record; clients cannot set it.
type CreateSaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

// SaleItemResponse is one line of a recorded sale
type SaleItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleResponse is the full sale view
type SaleResponse struct {
	ID            uuid.UUID           `json:"id"`
	Number        string              `json:"number"`
	Items         []SaleItemResponse  `json:"items"`
	PaymentMethod sales.PaymentMethod `json:"payment_method"`
	CustomerName  string              `json:"customer_name"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Discount      decimal.Decimal     `json:"discount"`
	Total         decimal.Decimal     `json:"total"`
	TotalUnits    int64               `json:"total_units"`
	Notes         string              `json:"notes"`
	SoldBy        uuid.UUID           `json:"sold_by"`
	CreatedAt     time.Time           `json:"created_at"`
}

// SaleListFilter carries list query parameters
type SaleListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}

// ToSaleResponse converts a sale aggregate to its response DTO
func ToSaleResponse(s *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Decimal(),
			LineTotal:   item.LineTotal.Decimal(),
		})
	}

	return SaleResponse{
		ID:            s.ID,
		Number:        s.Number,
		Items:         items,
		PaymentMethod: s.PaymentMethod,
		CustomerName:  s.CustomerName,
		Subtotal:      s.Subtotal().Decimal(),
		Discount:      s.Discount.Decimal(),
		Total:         s.Total().Decimal(),
		TotalUnits:    s.TotalUnits(),
		Notes:         s.Notes,
		SoldBy:        s.SoldBy,
		CreatedAt:     s.CreatedAt,
	}
}
