package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/purchasing"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
)

// PurchaseModel is the persistence model for purchases
type PurchaseModel struct {
	AggregateModel
	Number  string                `gorm:"size:50;not null;uniqueIndex"`
	Notes   string                `gorm:"type:text"`
	Items   []PurchaseItemModel   `gorm:"foreignKey:PurchaseID"`
	Returns []PurchaseReturnModel `gorm:"foreignKey:PurchaseID"`
}

// TableName returns the table name for PurchaseModel
func (PurchaseModel) TableName() string {
	return "purchases"
}

// PurchaseItemModel is the persistence model for purchase lines
type PurchaseItemModel struct {
	ID                         uuid.UUID `gorm:"type:uuid;primary_key"`
	PurchaseID                 uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID                  uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName                string    `gorm:"size:200;not null"`
	Quantity                   int64     `gorm:"not null"`
	UnitCostCents              int64     `gorm:"not null"`
	LineTotalCents             int64     `gorm:"not null"`
	PreviousStock              int64     `gorm:"not null"`
	PreviousPurchasePriceCents int64     `gorm:"not null"`
	PreviousSalePriceCents     int64     `gorm:"not null"`
	NewSalePriceCents          int64     `gorm:"not null"`
	CreatedAt                  time.Time `gorm:"not null"`
}

// TableName returns the table name for PurchaseItemModel
func (PurchaseItemModel) TableName() string {
	return "purchase_items"
}

// PurchaseReturnModel is the persistence model for purchase returns. Rows are
// append-only; they are inserted once and never updated.
type PurchaseReturnModel struct {
	ID               uuid.UUID                 `gorm:"type:uuid;primary_key"`
	PurchaseID       uuid.UUID                 `gorm:"type:uuid;not null;index"`
	TotalRefundCents int64                     `gorm:"not null"`
	TotalUnits       int64                     `gorm:"not null"`
	Reason           string                    `gorm:"size:500"`
	Notes            string                    `gorm:"type:text"`
	Items            []PurchaseReturnItemModel `gorm:"foreignKey:ReturnID"`
	CreatedAt        time.Time                 `gorm:"not null;index"`
}

// TableName returns the table name for PurchaseReturnModel
func (PurchaseReturnModel) TableName() string {
	return "purchase_returns"
}

// PurchaseReturnItemModel is the persistence model for purchase return lines
type PurchaseReturnItemModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	ReturnID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName      string    `gorm:"size:200;not null"`
	ReturnedQuantity int64     `gorm:"not null"`
	OriginalQuantity int64     `gorm:"not null"`
	UnitCostCents    int64     `gorm:"not null"`
	TotalRefundCents int64     `gorm:"not null"`
	Reason           string    `gorm:"size:500"`
	CreatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for PurchaseReturnItemModel
func (PurchaseReturnItemModel) TableName() string {
	return "purchase_return_items"
}

// ToDomain converts the model to a domain purchase
func (m *PurchaseModel) ToDomain() *purchasing.Purchase {
	p := &purchasing.Purchase{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Number:            m.Number,
		Notes:             m.Notes,
		Items:             make([]purchasing.PurchaseItem, len(m.Items)),
		Returns:           make([]purchasing.PurchaseReturn, len(m.Returns)),
	}
	for i := range m.Items {
		p.Items[i] = *m.Items[i].ToDomain()
	}
	for i := range m.Returns {
		p.Returns[i] = *m.Returns[i].ToDomain()
	}
	return p
}

// PurchaseModelFromDomain converts a domain purchase to the persistence model
func PurchaseModelFromDomain(p *purchasing.Purchase) *PurchaseModel {
	m := &PurchaseModel{
		Number: p.Number,
		Notes:  p.Notes,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// ToDomain converts the model to a domain purchase item
func (m *PurchaseItemModel) ToDomain() *purchasing.PurchaseItem {
	return &purchasing.PurchaseItem{
		ID:                    m.ID,
		PurchaseID:            m.PurchaseID,
		ProductID:             m.ProductID,
		ProductName:           m.ProductName,
		Quantity:              m.Quantity,
		UnitCost:              valueobject.NewMoneyFromCents(m.UnitCostCents),
		LineTotal:             valueobject.NewMoneyFromCents(m.LineTotalCents),
		PreviousStock:         m.PreviousStock,
		PreviousPurchasePrice: valueobject.NewMoneyFromCents(m.PreviousPurchasePriceCents),
		PreviousSalePrice:     valueobject.NewMoneyFromCents(m.PreviousSalePriceCents),
		NewSalePrice:          valueobject.NewMoneyFromCents(m.NewSalePriceCents),
		CreatedAt:             m.CreatedAt,
	}
}

// PurchaseItemModelFromDomain converts a domain purchase item to the model
func PurchaseItemModelFromDomain(item *purchasing.PurchaseItem) *PurchaseItemModel {
	return &PurchaseItemModel{
		ID:                         item.ID,
		PurchaseID:                 item.PurchaseID,
		ProductID:                  item.ProductID,
		ProductName:                item.ProductName,
		Quantity:                   item.Quantity,
		UnitCostCents:              item.UnitCost.Cents(),
		LineTotalCents:             item.LineTotal.Cents(),
		PreviousStock:              item.PreviousStock,
		PreviousPurchasePriceCents: item.PreviousPurchasePrice.Cents(),
		PreviousSalePriceCents:     item.PreviousSalePrice.Cents(),
		NewSalePriceCents:          item.NewSalePrice.Cents(),
		CreatedAt:                  item.CreatedAt,
	}
}

// ToDomain converts the model to a domain purchase return
func (m *PurchaseReturnModel) ToDomain() *purchasing.PurchaseReturn {
	ret := &purchasing.PurchaseReturn{
		ID:          m.ID,
		PurchaseID:  m.PurchaseID,
		TotalRefund: valueobject.NewMoneyFromCents(m.TotalRefundCents),
		TotalUnits:  m.TotalUnits,
		Reason:      m.Reason,
		Notes:       m.Notes,
		Items:       make([]purchasing.PurchaseReturnItem, len(m.Items)),
		CreatedAt:   m.CreatedAt,
	}
	for i := range m.Items {
		ret.Items[i] = *m.Items[i].ToDomain()
	}
	return ret
}

// PurchaseReturnModelFromDomain converts a domain purchase return to the model
func PurchaseReturnModelFromDomain(ret *purchasing.PurchaseReturn) *PurchaseReturnModel {
	return &PurchaseReturnModel{
		ID:               ret.ID,
		PurchaseID:       ret.PurchaseID,
		TotalRefundCents: ret.TotalRefund.Cents(),
		TotalUnits:       ret.TotalUnits,
		Reason:           ret.Reason,
		Notes:            ret.Notes,
		CreatedAt:        ret.CreatedAt,
	}
}

// ToDomain converts the model to a domain purchase return item
func (m *PurchaseReturnItemModel) ToDomain() *purchasing.PurchaseReturnItem {
	return &purchasing.PurchaseReturnItem{
		ID:               m.ID,
		ReturnID:         m.ReturnID,
		ProductID:        m.ProductID,
		ProductName:      m.ProductName,
		ReturnedQuantity: m.ReturnedQuantity,
		OriginalQuantity: m.OriginalQuantity,
		UnitCost:         valueobject.NewMoneyFromCents(m.UnitCostCents),
		TotalRefund:      valueobject.NewMoneyFromCents(m.TotalRefundCents),
		Reason:           m.Reason,
		CreatedAt:        m.CreatedAt,
	}
}

// PurchaseReturnItemModelFromDomain converts a domain return item to the model
func PurchaseReturnItemModelFromDomain(item *purchasing.PurchaseReturnItem) *PurchaseReturnItemModel {
	return &PurchaseReturnItemModel{
		ID:               item.ID,
		ReturnID:         item.ReturnID,
		ProductID:        item.ProductID,
		ProductName:      item.ProductName,
		ReturnedQuantity: item.ReturnedQuantity,
		OriginalQuantity: item.OriginalQuantity,
		UnitCostCents:    item.UnitCost.Cents(),
		TotalRefundCents: item.TotalRefund.Cents(),
		Reason:           item.Reason,
		CreatedAt:        item.CreatedAt,
	}
}
