package layaway

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
)

// PlanStatus represents the status of a layaway plan
type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "ACTIVE"
	PlanStatusCompleted PlanStatus = "COMPLETED" // fully paid, goods released
	PlanStatusCancelled PlanStatus = "CANCELLED"
)

// PlanItem represents merchandise reserved under a layaway plan, with name
// and price snapshotted when the plan was opened
type PlanItem struct {
	ID          uuid.UUID
	PlanID      uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	UnitPrice   valueobject.Money
	LineTotal   valueobject.Money
}

// Payment is a single installment received against a plan. Payments are
// append-only; the plan balance is always derived from the full payment
// history rather than kept as a counter.
type Payment struct {
	ID         uuid.UUID
	PlanID     uuid.UUID
	Amount     valueobject.Money
	Method     string
	Notes      string
	ReceivedAt time.Time
	ReceivedBy uuid.UUID
}

// Plan represents a layaway plan aggregate root. The customer reserves
// merchandise with a deposit and pays the remainder in installments; the
// goods leave the shop only when the balance reaches zero.
type Plan struct {
	shared.BaseAggregateRoot
	Number       string
	CustomerName string
	CustomerID   string // national ID or phone, free-form
	Items        []PlanItem
	Payments     []Payment
	Status       PlanStatus
	DueDate      *time.Time
	Notes        string
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string
}

// NewPlan creates a new active layaway plan
func NewPlan(number, customerName, customerID string, dueDate *time.Time) (*Plan, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Plan number cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}

	return &Plan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CustomerName:      customerName,
		CustomerID:        customerID,
		Items:             make([]PlanItem, 0),
		Payments:          make([]Payment, 0),
		Status:            PlanStatusActive,
		DueDate:           dueDate,
	}, nil
}

// AddItem reserves merchandise under the plan. Items can only be added
// before the first payment is received.
func (p *Plan) AddItem(productID uuid.UUID, productName string, quantity int64, unitPrice valueobject.Money) error {
	if p.Status != PlanStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot add items to a closed plan")
	}
	if len(p.Payments) > 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot change reserved items after payments have been received")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	p.Items = append(p.Items, PlanItem{
		ID:          uuid.New(),
		PlanID:      p.ID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.MulInt(quantity),
	})
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// RecordPayment appends an installment to the payment ledger. A payment that
// would overshoot the outstanding balance is rejected. When the balance
// reaches exactly zero the plan completes and the goods are released.
func (p *Plan) RecordPayment(amount valueobject.Money, method, notes string, receivedBy uuid.UUID) (*Payment, error) {
	if p.Status != PlanStatusActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot receive payments on a closed plan")
	}
	if len(p.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_STATE", "Plan has no reserved items")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	balance := p.Balance()
	if amount.GreaterThan(balance) {
		return nil, shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("Payment of %s exceeds the outstanding balance of %s", amount, balance))
	}

	payment := Payment{
		ID:         uuid.New(),
		PlanID:     p.ID,
		Amount:     amount,
		Method:     method,
		Notes:      notes,
		ReceivedAt: time.Now(),
		ReceivedBy: receivedBy,
	}
	p.Payments = append(p.Payments, payment)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	if p.Balance().IsZero() {
		now := time.Now()
		p.Status = PlanStatusCompleted
		p.CompletedAt = &now
		p.AddDomainEvent(NewPlanCompletedEvent(p))
	}

	return &p.Payments[len(p.Payments)-1], nil
}

// Cancel closes an active plan. Reserved stock goes back on the shelf;
// refunding the customer is handled outside the aggregate.
func (p *Plan) Cancel(reason string) error {
	if p.Status != PlanStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active plans can be cancelled")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}
	now := time.Now()
	p.Status = PlanStatusCancelled
	p.CancelledAt = &now
	p.CancelReason = reason
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPlanCancelledEvent(p, reason))

	return nil
}

// Total returns the full price of the reserved merchandise
func (p *Plan) Total() valueobject.Money {
	total := valueobject.ZeroMoney()
	for _, item := range p.Items {
		total = total.Add(item.LineTotal)
	}
	return total
}

// TotalPaid sums the payment ledger
func (p *Plan) TotalPaid() valueobject.Money {
	paid := valueobject.ZeroMoney()
	for _, payment := range p.Payments {
		paid = paid.Add(payment.Amount)
	}
	return paid
}

// Balance returns the amount still owed, derived from the payment history
func (p *Plan) Balance() valueobject.Money {
	return p.Total().Subtract(p.TotalPaid())
}

// IsOverdue returns true if the plan is active past its due date
func (p *Plan) IsOverdue(now time.Time) bool {
	return p.Status == PlanStatusActive && p.DueDate != nil && now.After(*p.DueDate)
}
