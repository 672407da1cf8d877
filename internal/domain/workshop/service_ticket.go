package workshop

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
)

// TicketStatus represents the status of a service ticket
type TicketStatus string

const (
	TicketStatusReceived  TicketStatus = "RECEIVED"
	TicketStatusInRepair  TicketStatus = "IN_REPAIR"
	TicketStatusReady     TicketStatus = "READY"     // repaired, waiting for pickup
	TicketStatusDelivered TicketStatus = "DELIVERED" // handed back to the customer
	TicketStatusCancelled TicketStatus = "CANCELLED"
)

// IsValid checks if the status is a valid TicketStatus
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusReceived, TicketStatusInRepair, TicketStatusReady,
		TicketStatusDelivered, TicketStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s TicketStatus) CanTransitionTo(target TicketStatus) bool {
	switch s {
	case TicketStatusReceived:
		return target == TicketStatusInRepair || target == TicketStatusCancelled
	case TicketStatusInRepair:
		return target == TicketStatusReady || target == TicketStatusCancelled
	case TicketStatusReady:
		return target == TicketStatusDelivered || target == TicketStatusCancelled
	case TicketStatusDelivered, TicketStatusCancelled:
		return false // terminal states
	}
	return false
}

// TicketPart represents a spare part consumed by a repair, with name and
// price snapshotted at the time it was used
type TicketPart struct {
	ID          uuid.UUID
	TicketID    uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	UnitPrice   valueobject.Money
	LineTotal   valueobject.Money
	CreatedAt   time.Time
}

// ServiceTicket represents a device repair job aggregate root
type ServiceTicket struct {
	shared.BaseAggregateRoot
	Number         string
	CustomerName   string
	CustomerPhone  string
	DeviceBrand    string
	DeviceModel    string
	DeviceIMEI     string
	ReportedFault  string
	Diagnosis      string
	TechnicianID   uuid.UUID
	TechnicianName string // snapshot
	LaborPrice     valueobject.Money
	Parts          []TicketPart
	Status         TicketStatus
	ReceivedAt     time.Time
	StartedAt      *time.Time
	ReadyAt        *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string
	// Liquidated marks that the technician's labor on this ticket has been
	// settled in a liquidation run.
	Liquidated   bool
	LiquidatedAt *time.Time
}

// NewServiceTicket creates a new service ticket in RECEIVED status
func NewServiceTicket(
	number, customerName, customerPhone string,
	deviceBrand, deviceModel, deviceIMEI, reportedFault string,
	technicianID uuid.UUID, technicianName string,
	laborPrice valueobject.Money,
) (*ServiceTicket, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Ticket number cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}
	if reportedFault == "" {
		return nil, shared.NewDomainError("INVALID_FAULT", "Reported fault cannot be empty")
	}
	if technicianID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TECHNICIAN", "Technician ID cannot be empty")
	}
	if laborPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Labor price cannot be negative")
	}

	tk := &ServiceTicket{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CustomerName:      customerName,
		CustomerPhone:     customerPhone,
		DeviceBrand:       deviceBrand,
		DeviceModel:       deviceModel,
		DeviceIMEI:        deviceIMEI,
		ReportedFault:     reportedFault,
		TechnicianID:      technicianID,
		TechnicianName:    technicianName,
		LaborPrice:        laborPrice,
		Parts:             make([]TicketPart, 0),
		Status:            TicketStatusReceived,
		ReceivedAt:        time.Now(),
	}

	tk.AddDomainEvent(NewTicketReceivedEvent(tk))

	return tk, nil
}

// AddPart records a spare part consumed by the repair.
// Only allowed before the ticket reaches a terminal state.
func (t *ServiceTicket) AddPart(productID uuid.UUID, productName string, quantity int64, unitPrice valueobject.Money) (*TicketPart, error) {
	if t.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add parts to a closed ticket")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Part quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Part price cannot be negative")
	}

	part := TicketPart{
		ID:          uuid.New(),
		TicketID:    t.ID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.MulInt(quantity),
		CreatedAt:   time.Now(),
	}

	t.Parts = append(t.Parts, part)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return &t.Parts[len(t.Parts)-1], nil
}

// SetDiagnosis records the technician's diagnosis
func (t *ServiceTicket) SetDiagnosis(diagnosis string) {
	t.Diagnosis = diagnosis
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// SetLaborPrice updates the labor price while the repair is still open
func (t *ServiceTicket) SetLaborPrice(price valueobject.Money) error {
	if t.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot reprice a closed ticket")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Labor price cannot be negative")
	}
	t.LaborPrice = price
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// StartRepair transitions from RECEIVED to IN_REPAIR
func (t *ServiceTicket) StartRepair() error {
	if !t.Status.CanTransitionTo(TicketStatusInRepair) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start repair on a %s ticket", t.Status))
	}
	now := time.Now()
	t.Status = TicketStatusInRepair
	t.StartedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// MarkReady transitions from IN_REPAIR to READY
func (t *ServiceTicket) MarkReady() error {
	if !t.Status.CanTransitionTo(TicketStatusReady) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark a %s ticket ready", t.Status))
	}
	now := time.Now()
	t.Status = TicketStatusReady
	t.ReadyAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// Deliver transitions from READY to DELIVERED
func (t *ServiceTicket) Deliver() error {
	if !t.Status.CanTransitionTo(TicketStatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver a %s ticket", t.Status))
	}
	now := time.Now()
	t.Status = TicketStatusDelivered
	t.DeliveredAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTicketDeliveredEvent(t))

	return nil
}

// Cancel closes the ticket without completing the repair
func (t *ServiceTicket) Cancel(reason string) error {
	if !t.Status.CanTransitionTo(TicketStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel a %s ticket", t.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}
	now := time.Now()
	t.Status = TicketStatusCancelled
	t.CancelledAt = &now
	t.CancelReason = reason
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// MarkLiquidated flags the ticket's labor as settled with the technician.
// Only delivered tickets can be liquidated, and only once.
func (t *ServiceTicket) MarkLiquidated() error {
	if t.Status != TicketStatusDelivered {
		return shared.NewDomainError("INVALID_STATE", "Only delivered tickets can be liquidated")
	}
	if t.Liquidated {
		return shared.NewDomainError("ALREADY_LIQUIDATED", "Ticket labor has already been liquidated")
	}
	now := time.Now()
	t.Liquidated = true
	t.LiquidatedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// PartsTotal returns the sum of all part line totals
func (t *ServiceTicket) PartsTotal() valueobject.Money {
	total := valueobject.ZeroMoney()
	for _, part := range t.Parts {
		total = total.Add(part.LineTotal)
	}
	return total
}

// Total returns the amount the customer pays (labor plus parts)
func (t *ServiceTicket) Total() valueobject.Money {
	return t.LaborPrice.Add(t.PartsTotal())
}

// IsTerminal returns true if the ticket is delivered or cancelled
func (t *ServiceTicket) IsTerminal() bool {
	return t.Status == TicketStatusDelivered || t.Status == TicketStatusCancelled
}
