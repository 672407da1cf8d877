package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/purchasing"
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest is the request to record a new supplier purchase
type CreatePurchaseRequest struct {
	Items []CreatePurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes string                      `json:"notes"`
}

// CreatePurchaseItemRequest is one line of a new purchase. NewSalePrice is
// optional; when present the product's sale price is updated alongside the
// purchase price, with the previous prices snapshotted on the line.
type CreatePurchaseItemRequest struct {
	ProductID    uuid.UUID        `json:"product_id" binding:"required"`
	Quantity     int64            `json:"quantity" binding:"required,gt=0"`
	UnitCost     decimal.Decimal  `json:"unit_cost" binding:"required"`
	NewSalePrice *decimal.Decimal `json:"new_sale_price"`
}

// CreateReturnRequest is the request to record a return against a purchase
type CreateReturnRequest struct {
	Items  []CreateReturnItemRequest `json:"items" binding:"required,dive"`
	Reason string                    `json:"reason"`
	Notes  string                    `json:"notes"`
}

// CreateReturnItemRequest is one product line of a proposed return. UnitCost
// must match the original purchase line exactly; it is sent back by the
// client to guard against stale price data.
type CreateReturnItemRequest struct {
	ProductID        uuid.UUID       `json:"product_id" binding:"required"`
	ReturnedQuantity int64           `json:"returned_quantity" binding:"required"`
	UnitCost         decimal.Decimal `json:"unit_cost" binding:"required"`
	Reason           string          `json:"reason"`
}

// ValidateReturnResponse reports the outcome of a dry-run validation
type ValidateReturnResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// PurchaseItemResponse is one purchase line in a response
type PurchaseItemResponse struct {
	ID                    uuid.UUID       `json:"id"`
	ProductID             uuid.UUID       `json:"product_id"`
	ProductName           string          `json:"product_name"`
	Quantity              int64           `json:"quantity"`
	UnitCost              decimal.Decimal `json:"unit_cost"`
	LineTotal             decimal.Decimal `json:"line_total"`
	ReturnableQuantity    int64           `json:"returnable_quantity"`
	PreviousStock         int64           `json:"previous_stock"`
	PreviousPurchasePrice decimal.Decimal `json:"previous_purchase_price"`
	PreviousSalePrice     decimal.Decimal `json:"previous_sale_price"`
	NewSalePrice          decimal.Decimal `json:"new_sale_price"`
}

// ReturnItemResponse is one line of a recorded return
type ReturnItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	ReturnedQuantity int64           `json:"returned_quantity"`
	OriginalQuantity int64           `json:"original_quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalRefund      decimal.Decimal `json:"total_refund"`
	Reason           string          `json:"reason"`
}

// ReturnResponse is a recorded, immutable return
type ReturnResponse struct {
	ID          uuid.UUID            `json:"id"`
	PurchaseID  uuid.UUID            `json:"purchase_id"`
	Items       []ReturnItemResponse `json:"items"`
	TotalRefund decimal.Decimal      `json:"total_refund"`
	TotalUnits  int64                `json:"total_units"`
	Reason      string               `json:"reason"`
	Notes       string               `json:"notes"`
	CreatedAt   time.Time            `json:"created_at"`
}

// PurchaseResponse is the full purchase view including the return history and
// the derived net-cost figures
type PurchaseResponse struct {
	ID            uuid.UUID              `json:"id"`
	Number        string                 `json:"number"`
	Items         []PurchaseItemResponse `json:"items"`
	Returns       []ReturnResponse       `json:"returns"`
	TotalCost     decimal.Decimal        `json:"total_cost"`
	TotalReturned decimal.Decimal        `json:"total_returned"`
	NetCost       decimal.Decimal        `json:"net_cost"`
	TotalUnits    int64                  `json:"total_units"`
	ReturnedUnits int64                  `json:"returned_units"`
	Notes         string                 `json:"notes"`
	Version       int                    `json:"version"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// PurchaseListItemResponse is the condensed purchase view for list endpoints
type PurchaseListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	ItemCount     int             `json:"item_count"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalReturned decimal.Decimal `json:"total_returned"`
	NetCost       decimal.Decimal `json:"net_cost"`
	HasReturns    bool            `json:"has_returns"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PurchaseListFilter carries list query parameters
type PurchaseListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}

// ToPurchaseResponse converts a purchase aggregate to its response DTO
func ToPurchaseResponse(p *purchasing.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, PurchaseItemResponse{
			ID:                    item.ID,
			ProductID:             item.ProductID,
			ProductName:           item.ProductName,
			Quantity:              item.Quantity,
			UnitCost:              item.UnitCost.Decimal(),
			LineTotal:             item.LineTotal.Decimal(),
			ReturnableQuantity:    p.ReturnableQuantity(item.ProductID),
			PreviousStock:         item.PreviousStock,
			PreviousPurchasePrice: item.PreviousPurchasePrice.Decimal(),
			PreviousSalePrice:     item.PreviousSalePrice.Decimal(),
			NewSalePrice:          item.NewSalePrice.Decimal(),
		})
	}

	returns := make([]ReturnResponse, 0, len(p.Returns))
	for idx := range p.Returns {
		returns = append(returns, ToReturnResponse(&p.Returns[idx]))
	}

	return PurchaseResponse{
		ID:            p.ID,
		Number:        p.Number,
		Items:         items,
		Returns:       returns,
		TotalCost:     p.TotalCost().Decimal(),
		TotalReturned: p.GetTotalReturned().Decimal(),
		NetCost:       p.GetNetCost().Decimal(),
		TotalUnits:    p.TotalUnits(),
		ReturnedUnits: p.TotalReturnedUnits(),
		Notes:         p.Notes,
		Version:       p.GetVersion(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToReturnResponse converts a recorded return to its response DTO
func ToReturnResponse(ret *purchasing.PurchaseReturn) ReturnResponse {
	items := make([]ReturnItemResponse, 0, len(ret.Items))
	for _, item := range ret.Items {
		items = append(items, ReturnItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			ReturnedQuantity: item.ReturnedQuantity,
			OriginalQuantity: item.OriginalQuantity,
			UnitCost:         item.UnitCost.Decimal(),
			TotalRefund:      item.TotalRefund.Decimal(),
			Reason:           item.Reason,
		})
	}

	return ReturnResponse{
		ID:          ret.ID,
		PurchaseID:  ret.PurchaseID,
		Items:       items,
		TotalRefund: ret.TotalRefund.Decimal(),
		TotalUnits:  ret.TotalUnits,
		Reason:      ret.Reason,
		Notes:       ret.Notes,
		CreatedAt:   ret.CreatedAt,
	}
}

// ToPurchaseListItemResponse converts a purchase to its list DTO
func ToPurchaseListItemResponse(p *purchasing.Purchase) PurchaseListItemResponse {
	return PurchaseListItemResponse{
		ID:            p.ID,
		Number:        p.Number,
		ItemCount:     len(p.Items),
		TotalCost:     p.TotalCost().Decimal(),
		TotalReturned: p.GetTotalReturned().Decimal(),
		NetCost:       p.GetNetCost().Decimal(),
		HasReturns:    len(p.Returns) > 0,
		CreatedAt:     p.CreatedAt,
	}
}
