package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/sales"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
)

// SaleModel is the persistence model for counter sales
type SaleModel struct {
	AggregateModel
	Number        string          `gorm:"size:50;not null;uniqueIndex"`
	PaymentMethod string          `gorm:"size:20;not null;index"`
	CustomerName  string          `gorm:"size:200"`
	DiscountCents int64           `gorm:"not null;default:0"`
	Notes         string          `gorm:"type:text"`
	SoldBy        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items         []SaleItemModel `gorm:"foreignKey:SaleID"`
}

// TableName returns the table name for SaleModel
func (SaleModel) TableName() string {
	return "sales"
}

// SaleItemModel is the persistence model for sale lines
type SaleItemModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	SaleID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName    string    `gorm:"size:200;not null"`
	Quantity       int64     `gorm:"not null"`
	UnitPriceCents int64     `gorm:"not null"`
	LineTotalCents int64     `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for SaleItemModel
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ToDomain converts the model to a domain sale
func (m *SaleModel) ToDomain() *sales.Sale {
	s := &sales.Sale{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Number:            m.Number,
		PaymentMethod:     sales.PaymentMethod(m.PaymentMethod),
		CustomerName:      m.CustomerName,
		Discount:          valueobject.NewMoneyFromCents(m.DiscountCents),
		Notes:             m.Notes,
		SoldBy:            m.SoldBy,
		Items:             make([]sales.SaleItem, len(m.Items)),
	}
	for i := range m.Items {
		s.Items[i] = *m.Items[i].ToDomain()
	}
	return s
}

// SaleModelFromDomain converts a domain sale to the persistence model
func SaleModelFromDomain(s *sales.Sale) *SaleModel {
	m := &SaleModel{
		Number:        s.Number,
		PaymentMethod: string(s.PaymentMethod),
		CustomerName:  s.CustomerName,
		DiscountCents: s.Discount.Cents(),
		Notes:         s.Notes,
		SoldBy:        s.SoldBy,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}

// ToDomain converts the model to a domain sale item
func (m *SaleItemModel) ToDomain() *sales.SaleItem {
	return &sales.SaleItem{
		ID:          m.ID,
		SaleID:      m.SaleID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitPrice:   valueobject.NewMoneyFromCents(m.UnitPriceCents),
		LineTotal:   valueobject.NewMoneyFromCents(m.LineTotalCents),
		CreatedAt:   m.CreatedAt,
	}
}

// SaleItemModelFromDomain converts a domain sale item to the model
func SaleItemModelFromDomain(item *sales.SaleItem) *SaleItemModel {
	return &SaleItemModel{
		ID:             item.ID,
		SaleID:         item.SaleID,
		ProductID:      item.ProductID,
		ProductName:    item.ProductName,
		Quantity:       item.Quantity,
		UnitPriceCents: item.UnitPrice.Cents(),
		LineTotalCents: item.LineTotal.Cents(),
		CreatedAt:      item.CreatedAt,
	}
}
