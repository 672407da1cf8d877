package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/layaway"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
)

// PlanModel is the persistence model for layaway plans
type PlanModel struct {
	AggregateModel
	Number       string         `gorm:"size:50;not null;uniqueIndex"`
	CustomerName string         `gorm:"size:200;not null"`
	CustomerID   string         `gorm:"size:50;index"`
	Status       string         `gorm:"size:20;not null;index"`
	DueDate      *time.Time     `gorm:"index"`
	Notes        string         `gorm:"type:text"`
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string         `gorm:"size:500"`
	Items        []PlanItemModel `gorm:"foreignKey:PlanID"`
	Payments     []PaymentModel  `gorm:"foreignKey:PlanID"`
}

// TableName returns the table name for PlanModel
func (PlanModel) TableName() string {
	return "layaway_plans"
}

// PlanItemModel is the persistence model for reserved layaway merchandise
type PlanItemModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	PlanID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName    string    `gorm:"size:200;not null"`
	Quantity       int64     `gorm:"not null"`
	UnitPriceCents int64     `gorm:"not null"`
	LineTotalCents int64     `gorm:"not null"`
}

// TableName returns the table name for PlanItemModel
func (PlanItemModel) TableName() string {
	return "layaway_plan_items"
}

// PaymentModel is the persistence model for layaway installments. Rows are
// append-only; the plan balance is derived from the full payment history.
type PaymentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	PlanID      uuid.UUID `gorm:"type:uuid;not null;index"`
	AmountCents int64     `gorm:"not null"`
	Method      string    `gorm:"size:20;not null"`
	Notes       string    `gorm:"size:500"`
	ReceivedAt  time.Time `gorm:"not null;index"`
	ReceivedBy  uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for PaymentModel
func (PaymentModel) TableName() string {
	return "layaway_payments"
}

// ToDomain converts the model to a domain plan
func (m *PlanModel) ToDomain() *layaway.Plan {
	p := &layaway.Plan{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Number:            m.Number,
		CustomerName:      m.CustomerName,
		CustomerID:        m.CustomerID,
		Status:            layaway.PlanStatus(m.Status),
		DueDate:           m.DueDate,
		Notes:             m.Notes,
		CompletedAt:       m.CompletedAt,
		CancelledAt:       m.CancelledAt,
		CancelReason:      m.CancelReason,
		Items:             make([]layaway.PlanItem, len(m.Items)),
		Payments:          make([]layaway.Payment, len(m.Payments)),
	}
	for i := range m.Items {
		p.Items[i] = *m.Items[i].ToDomain()
	}
	for i := range m.Payments {
		p.Payments[i] = *m.Payments[i].ToDomain()
	}
	return p
}

// PlanModelFromDomain converts a domain plan to the persistence model
func PlanModelFromDomain(p *layaway.Plan) *PlanModel {
	m := &PlanModel{
		Number:       p.Number,
		CustomerName: p.CustomerName,
		CustomerID:   p.CustomerID,
		Status:       string(p.Status),
		DueDate:      p.DueDate,
		Notes:        p.Notes,
		CompletedAt:  p.CompletedAt,
		CancelledAt:  p.CancelledAt,
		CancelReason: p.CancelReason,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// ToDomain converts the model to a domain plan item
func (m *PlanItemModel) ToDomain() *layaway.PlanItem {
	return &layaway.PlanItem{
		ID:          m.ID,
		PlanID:      m.PlanID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitPrice:   valueobject.NewMoneyFromCents(m.UnitPriceCents),
		LineTotal:   valueobject.NewMoneyFromCents(m.LineTotalCents),
	}
}

// PlanItemModelFromDomain converts a domain plan item to the model
func PlanItemModelFromDomain(item *layaway.PlanItem) *PlanItemModel {
	return &PlanItemModel{
		ID:             item.ID,
		PlanID:         item.PlanID,
		ProductID:      item.ProductID,
		ProductName:    item.ProductName,
		Quantity:       item.Quantity,
		UnitPriceCents: item.UnitPrice.Cents(),
		LineTotalCents: item.LineTotal.Cents(),
	}
}

// ToDomain converts the model to a domain payment
func (m *PaymentModel) ToDomain() *layaway.Payment {
	return &layaway.Payment{
		ID:         m.ID,
		PlanID:     m.PlanID,
		Amount:     valueobject.NewMoneyFromCents(m.AmountCents),
		Method:     m.Method,
		Notes:      m.Notes,
		ReceivedAt: m.ReceivedAt,
		ReceivedBy: m.ReceivedBy,
	}
}

// PaymentModelFromDomain converts a domain payment to the model
func PaymentModelFromDomain(p *layaway.Payment) *PaymentModel {
	return &PaymentModel{
		ID:          p.ID,
		PlanID:      p.PlanID,
		AmountCents: p.Amount.Cents(),
		Method:      p.Method,
		Notes:       p.Notes,
		ReceivedAt:  p.ReceivedAt,
		ReceivedBy:  p.ReceivedBy,
	}
}
