package sales

import (
	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSale = "Sale"

// Event type constants
const (
	EventTypeSaleCompleted = "SaleCompleted"
)

// SaleCompletedEvent is published when a sale is finalized
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID `json:"sale_id"`
	Number     string    `json:"number"`
	TotalCents int64     `json:"total_cents"`
	TotalUnits int64     `json:"total_units"`
	SoldBy     uuid.UUID `json:"sold_by"`
}

// NewSaleCompletedEvent creates a new SaleCompletedEvent
func NewSaleCompletedEvent(s *Sale) *SaleCompletedEvent {
	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCompleted, AggregateTypeSale, s.ID),
		SaleID:          s.ID,
		Number:          s.Number,
		TotalCents:      s.Total().Cents(),
		TotalUnits:      s.TotalUnits(),
		SoldBy:          s.SoldBy,
	}
}
