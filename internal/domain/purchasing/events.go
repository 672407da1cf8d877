package purchasing

import (
	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypePurchase = "Purchase"

// Event type constants
const (
	EventTypePurchaseCreated        = "PurchaseCreated"
	EventTypePurchaseReturnRecorded = "PurchaseReturnRecorded"
)

// PurchaseCreatedEvent is published when a purchase is recorded
type PurchaseCreatedEvent struct {
	shared.BaseDomainEvent
	PurchaseID uuid.UUID `json:"purchase_id"`
	Number     string    `json:"number"`
}

// NewPurchaseCreatedEvent creates a new PurchaseCreatedEvent
func NewPurchaseCreatedEvent(p *Purchase) *PurchaseCreatedEvent {
	return &PurchaseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseCreated, AggregateTypePurchase, p.ID),
		PurchaseID:      p.ID,
		Number:          p.Number,
	}
}

// ReturnedItemSummary describes one returned line inside a return event
type ReturnedItemSummary struct {
	ProductID        uuid.UUID `json:"product_id"`
	ProductName      string    `json:"product_name"`
	ReturnedQuantity int64     `json:"returned_quantity"`
	RefundCents      int64     `json:"refund_cents"`
}

// PurchaseReturnRecordedEvent is published after a return has been committed
// together with its stock decrements
type PurchaseReturnRecordedEvent struct {
	shared.BaseDomainEvent
	PurchaseID       uuid.UUID             `json:"purchase_id"`
	ReturnID         uuid.UUID             `json:"return_id"`
	TotalRefundCents int64                 `json:"total_refund_cents"`
	TotalUnits       int64                 `json:"total_units"`
	NetCostCents     int64                 `json:"net_cost_cents"`
	Items            []ReturnedItemSummary `json:"items"`
}

// NewPurchaseReturnRecordedEvent creates a new PurchaseReturnRecordedEvent
func NewPurchaseReturnRecordedEvent(p *Purchase, ret *PurchaseReturn) *PurchaseReturnRecordedEvent {
	items := make([]ReturnedItemSummary, len(ret.Items))
	for i, item := range ret.Items {
		items[i] = ReturnedItemSummary{
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			ReturnedQuantity: item.ReturnedQuantity,
			RefundCents:      item.TotalRefund.Cents(),
		}
	}
	return &PurchaseReturnRecordedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypePurchaseReturnRecorded, AggregateTypePurchase, p.ID),
		PurchaseID:       p.ID,
		ReturnID:         ret.ID,
		TotalRefundCents: ret.TotalRefund.Cents(),
		TotalUnits:       ret.TotalUnits,
		NetCostCents:     p.GetNetCost().Cents(),
		Items:            items,
	}
}
