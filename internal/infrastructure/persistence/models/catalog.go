package models

import (
	"github.com/movilshop/backend/internal/domain/catalog"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
)

// ProductModel is the persistence model for catalog products
type ProductModel struct {
	AggregateModel
	Name                       string `gorm:"size:200;not null"`
	Code                       string `gorm:"size:50;not null;uniqueIndex"`
	Brand                      string `gorm:"size:100"`
	Category                   string `gorm:"size:100;index"`
	Description                string `gorm:"type:text"`
	Stock                      int64  `gorm:"not null;default:0"`
	MinStock                   int64  `gorm:"not null;default:0"`
	PurchasePriceCents         int64  `gorm:"not null;default:0"`
	SalePriceCents             int64  `gorm:"not null;default:0"`
	PreviousPurchasePriceCents int64  `gorm:"not null;default:0"`
	PreviousSalePriceCents     int64  `gorm:"not null;default:0"`
	Active                     bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for ProductModel
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot:     m.ToAggregateRoot(),
		Name:                  m.Name,
		Code:                  m.Code,
		Brand:                 m.Brand,
		Category:              m.Category,
		Description:           m.Description,
		Stock:                 m.Stock,
		MinStock:              m.MinStock,
		PurchasePrice:         valueobject.NewMoneyFromCents(m.PurchasePriceCents),
		SalePrice:             valueobject.NewMoneyFromCents(m.SalePriceCents),
		PreviousPurchasePrice: valueobject.NewMoneyFromCents(m.PreviousPurchasePriceCents),
		PreviousSalePrice:     valueobject.NewMoneyFromCents(m.PreviousSalePriceCents),
		Active:                m.Active,
	}
}

// ProductModelFromDomain converts a domain product to the persistence model
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:                       p.Name,
		Code:                       p.Code,
		Brand:                      p.Brand,
		Category:                   p.Category,
		Description:                p.Description,
		Stock:                      p.Stock,
		MinStock:                   p.MinStock,
		PurchasePriceCents:         p.PurchasePrice.Cents(),
		SalePriceCents:             p.SalePrice.Cents(),
		PreviousPurchasePriceCents: p.PreviousPurchasePrice.Cents(),
		PreviousSalePriceCents:     p.PreviousSalePrice.Cents(),
		Active:                     p.Active,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}
