package workshop

import (
	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
)

// TicketReceivedEvent is emitted when a device is taken in for repair
type TicketReceivedEvent struct {
	shared.BaseDomainEvent
	TicketNumber   string    `json:"ticket_number"`
	CustomerName   string    `json:"customer_name"`
	DeviceBrand    string    `json:"device_brand"`
	DeviceModel    string    `json:"device_model"`
	TechnicianID   uuid.UUID `json:"technician_id"`
	TechnicianName string    `json:"technician_name"`
}

// NewTicketReceivedEvent creates a new ticket received event
func NewTicketReceivedEvent(t *ServiceTicket) *TicketReceivedEvent {
	return &TicketReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("workshop.ticket.received", "ServiceTicket", t.ID),
		TicketNumber:    t.Number,
		CustomerName:    t.CustomerName,
		DeviceBrand:     t.DeviceBrand,
		DeviceModel:     t.DeviceModel,
		TechnicianID:    t.TechnicianID,
		TechnicianName:  t.TechnicianName,
	}
}

// TicketDeliveredEvent is emitted when a repaired device is handed back
type TicketDeliveredEvent struct {
	shared.BaseDomainEvent
	TicketNumber    string    `json:"ticket_number"`
	TechnicianID    uuid.UUID `json:"technician_id"`
	LaborPriceCents int64     `json:"labor_price_cents"`
	PartsTotalCents int64     `json:"parts_total_cents"`
	TotalCents      int64     `json:"total_cents"`
}

// NewTicketDeliveredEvent creates a new ticket delivered event
func NewTicketDeliveredEvent(t *ServiceTicket) *TicketDeliveredEvent {
	return &TicketDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("workshop.ticket.delivered", "ServiceTicket", t.ID),
		TicketNumber:    t.Number,
		TechnicianID:    t.TechnicianID,
		LaborPriceCents: t.LaborPrice.Cents(),
		PartsTotalCents: t.PartsTotal().Cents(),
		TotalCents:      t.Total().Cents(),
	}
}
