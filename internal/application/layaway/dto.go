package layaway

import (
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/layaway"
	"github.com/shopspring/decimal"
)

// CreatePlanRequest opens a layaway plan, reserving the listed merchandise
type CreatePlanRequest struct {
	CustomerName string                      `json:"customer_name" binding:"required"`
	CustomerID   string                      `json:"customer_id"`
	Items        []CreatePlanItemRequest     `json:"items" binding:"required,min=1,dive"`
	DueDate      *time.Time                  `json:"due_date"`
	Deposit      *decimal.Decimal            `json:"deposit"`
	Method       string                      `json:"method"`
}

// CreatePlanItemRequest is one reserved product line
type CreatePlanItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

// RecordPaymentRequest adds an installment to a plan
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"required"`
	Notes  string          `json:"notes"`
}

// CancelPlanRequest cancels a plan and restores its reserved stock
type CancelPlanRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PlanItemResponse is one reserved line
type PlanItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PaymentResponse is one received installment
type PaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Notes      string          `json:"notes"`
	ReceivedAt time.Time       `json:"received_at"`
	ReceivedBy uuid.UUID       `json:"received_by"`
}

// PlanResponse is the full plan view with the derived balance
type PlanResponse struct {
	ID           uuid.UUID          `json:"id"`
	Number       string             `json:"number"`
	CustomerName string             `json:"customer_name"`
	CustomerID   string             `json:"customer_id"`
	Items        []PlanItemResponse `json:"items"`
	Payments     []PaymentResponse  `json:"payments"`
	Total        decimal.Decimal    `json:"total"`
	TotalPaid    decimal.Decimal    `json:"total_paid"`
	Balance      decimal.Decimal    `json:"balance"`
	Status       layaway.PlanStatus `json:"status"`
	DueDate      *time.Time         `json:"due_date"`
	Overdue      bool               `json:"overdue"`
	CompletedAt  *time.Time         `json:"completed_at"`
	CancelledAt  *time.Time         `json:"cancelled_at"`
	CancelReason string             `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// PlanListFilter carries list query parameters
type PlanListFilter struct {
	Page     int                 `form:"page"`
	PageSize int                 `form:"page_size"`
	OrderBy  string              `form:"order_by"`
	OrderDir string              `form:"order_dir"`
	Search   string              `form:"search"`
	Status   *layaway.PlanStatus `form:"status"`
}

// ToPlanResponse converts a plan aggregate to its response DTO
func ToPlanResponse(p *layaway.Plan, now time.Time) PlanResponse {
	items := make([]PlanItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, PlanItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Decimal(),
			LineTotal:   item.LineTotal.Decimal(),
		})
	}

	payments := make([]PaymentResponse, 0, len(p.Payments))
	for _, payment := range p.Payments {
		payments = append(payments, PaymentResponse{
			ID:         payment.ID,
			Amount:     payment.Amount.Decimal(),
			Method:     payment.Method,
			Notes:      payment.Notes,
			ReceivedAt: payment.ReceivedAt,
			ReceivedBy: payment.ReceivedBy,
		})
	}

	return PlanResponse{
		ID:           p.ID,
		Number:       p.Number,
		CustomerName: p.CustomerName,
		CustomerID:   p.CustomerID,
		Items:        items,
		Payments:     payments,
		Total:        p.Total().Decimal(),
		TotalPaid:    p.TotalPaid().Decimal(),
		Balance:      p.Balance().Decimal(),
		Status:       p.Status,
		DueDate:      p.DueDate,
		Overdue:      p.IsOverdue(now),
		CompletedAt:  p.CompletedAt,
		CancelledAt:  p.CancelledAt,
		CancelReason: p.CancelReason,
		CreatedAt:    p.CreatedAt,
	}
}
