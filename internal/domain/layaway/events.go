package layaway

import (
	"github.com/movilshop/backend/internal/domain/shared"
)

// PlanCompletedEvent is emitted when the last installment clears the balance
type PlanCompletedEvent struct {
	shared.BaseDomainEvent
	PlanNumber   string `json:"plan_number"`
	CustomerName string `json:"customer_name"`
	TotalCents   int64  `json:"total_cents"`
	Installments int    `json:"installments"`
}

// NewPlanCompletedEvent creates a new plan completed event
func NewPlanCompletedEvent(p *Plan) *PlanCompletedEvent {
	return &PlanCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("layaway.plan.completed", "Plan", p.ID),
		PlanNumber:      p.Number,
		CustomerName:    p.CustomerName,
		TotalCents:      p.Total().Cents(),
		Installments:    len(p.Payments),
	}
}

// PlanCancelledEvent is emitted when a plan is cancelled and its reserved
// stock must be put back on the shelf
type PlanCancelledEvent struct {
	shared.BaseDomainEvent
	PlanNumber    string `json:"plan_number"`
	Reason        string `json:"reason"`
	PaidCents     int64  `json:"paid_cents"`
	ReservedUnits int64  `json:"reserved_units"`
}

// NewPlanCancelledEvent creates a new plan cancelled event
func NewPlanCancelledEvent(p *Plan, reason string) *PlanCancelledEvent {
	var units int64
	for _, item := range p.Items {
		units += item.Quantity
	}
	return &PlanCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("layaway.plan.cancelled", "Plan", p.ID),
		PlanNumber:      p.Number,
		Reason:          reason,
		PaidCents:       p.TotalPaid().Cents(),
		ReservedUnits:   units,
	}
}
