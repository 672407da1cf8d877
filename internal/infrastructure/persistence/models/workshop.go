package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
	"github.com/movilshop/backend/internal/domain/workshop"
)

// ServiceTicketModel is the persistence model for repair tickets
type ServiceTicketModel struct {
	AggregateModel
	Number          string            `gorm:"size:50;not null;uniqueIndex"`
	CustomerName    string            `gorm:"size:200;not null"`
	CustomerPhone   string            `gorm:"size:50"`
	DeviceBrand     string            `gorm:"size:100"`
	DeviceModel     string            `gorm:"size:100"`
	DeviceIMEI      string            `gorm:"size:50;index"`
	ReportedFault   string            `gorm:"type:text;not null"`
	Diagnosis       string            `gorm:"type:text"`
	TechnicianID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	TechnicianName  string            `gorm:"size:200;not null"`
	LaborPriceCents int64             `gorm:"not null"`
	Status          string            `gorm:"size:20;not null;index"`
	ReceivedAt      time.Time         `gorm:"not null"`
	StartedAt       *time.Time
	ReadyAt         *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string            `gorm:"size:500"`
	Liquidated      bool              `gorm:"not null;default:false;index"`
	LiquidatedAt    *time.Time
	Parts           []TicketPartModel `gorm:"foreignKey:TicketID"`
}

// TableName returns the table name for ServiceTicketModel
func (ServiceTicketModel) TableName() string {
	return "service_tickets"
}

// TicketPartModel is the persistence model for parts consumed by a repair
type TicketPartModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	TicketID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName    string    `gorm:"size:200;not null"`
	Quantity       int64     `gorm:"not null"`
	UnitPriceCents int64     `gorm:"not null"`
	LineTotalCents int64     `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for TicketPartModel
func (TicketPartModel) TableName() string {
	return "ticket_parts"
}

// ToDomain converts the model to a domain service ticket
func (m *ServiceTicketModel) ToDomain() *workshop.ServiceTicket {
	t := &workshop.ServiceTicket{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Number:            m.Number,
		CustomerName:      m.CustomerName,
		CustomerPhone:     m.CustomerPhone,
		DeviceBrand:       m.DeviceBrand,
		DeviceModel:       m.DeviceModel,
		DeviceIMEI:        m.DeviceIMEI,
		ReportedFault:     m.ReportedFault,
		Diagnosis:         m.Diagnosis,
		TechnicianID:      m.TechnicianID,
		TechnicianName:    m.TechnicianName,
		LaborPrice:        valueobject.NewMoneyFromCents(m.LaborPriceCents),
		Status:            workshop.TicketStatus(m.Status),
		ReceivedAt:        m.ReceivedAt,
		StartedAt:         m.StartedAt,
		ReadyAt:           m.ReadyAt,
		DeliveredAt:       m.DeliveredAt,
		CancelledAt:       m.CancelledAt,
		CancelReason:      m.CancelReason,
		Liquidated:        m.Liquidated,
		LiquidatedAt:      m.LiquidatedAt,
		Parts:             make([]workshop.TicketPart, len(m.Parts)),
	}
	for i := range m.Parts {
		t.Parts[i] = *m.Parts[i].ToDomain()
	}
	return t
}

// ServiceTicketModelFromDomain converts a domain ticket to the model
func ServiceTicketModelFromDomain(t *workshop.ServiceTicket) *ServiceTicketModel {
	m := &ServiceTicketModel{
		Number:          t.Number,
		CustomerName:    t.CustomerName,
		CustomerPhone:   t.CustomerPhone,
		DeviceBrand:     t.DeviceBrand,
		DeviceModel:     t.DeviceModel,
		DeviceIMEI:      t.DeviceIMEI,
		ReportedFault:   t.ReportedFault,
		Diagnosis:       t.Diagnosis,
		TechnicianID:    t.TechnicianID,
		TechnicianName:  t.TechnicianName,
		LaborPriceCents: t.LaborPrice.Cents(),
		Status:          string(t.Status),
		ReceivedAt:      t.ReceivedAt,
		StartedAt:       t.StartedAt,
		ReadyAt:         t.ReadyAt,
		DeliveredAt:     t.DeliveredAt,
		CancelledAt:     t.CancelledAt,
		CancelReason:    t.CancelReason,
		Liquidated:      t.Liquidated,
		LiquidatedAt:    t.LiquidatedAt,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}

// ToDomain converts the model to a domain ticket part
func (m *TicketPartModel) ToDomain() *workshop.TicketPart {
	return &workshop.TicketPart{
		ID:          m.ID,
		TicketID:    m.TicketID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitPrice:   valueobject.NewMoneyFromCents(m.UnitPriceCents),
		LineTotal:   valueobject.NewMoneyFromCents(m.LineTotalCents),
		CreatedAt:   m.CreatedAt,
	}
}

// TicketPartModelFromDomain converts a domain ticket part to the model
func TicketPartModelFromDomain(p *workshop.TicketPart) *TicketPartModel {
	return &TicketPartModel{
		ID:             p.ID,
		TicketID:       p.TicketID,
		ProductID:      p.ProductID,
		ProductName:    p.ProductName,
		Quantity:       p.Quantity,
		UnitPriceCents: p.UnitPrice.Cents(),
		LineTotalCents: p.LineTotal.Cents(),
		CreatedAt:      p.CreatedAt,
	}
}
