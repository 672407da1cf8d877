package catalog

import (
	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated       = "ProductCreated"
	EventTypeProductPricesChanged = "ProductPricesChanged"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Stock     int64     `json:"stock"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Code:            product.Code,
		Name:            product.Name,
		Stock:           product.Stock,
	}
}

// ProductPricesChangedEvent is published when a product's prices change
type ProductPricesChangedEvent struct {
	shared.BaseDomainEvent
	ProductID             uuid.UUID `json:"product_id"`
	PurchasePriceCents    int64     `json:"purchase_price_cents"`
	SalePriceCents        int64     `json:"sale_price_cents"`
	OldPurchasePriceCents int64     `json:"old_purchase_price_cents"`
	OldSalePriceCents     int64     `json:"old_sale_price_cents"`
}

// NewProductPricesChangedEvent creates a new ProductPricesChangedEvent
func NewProductPricesChangedEvent(product *Product) *ProductPricesChangedEvent {
	return &ProductPricesChangedEvent{
		BaseDomainEvent:       shared.NewBaseDomainEvent(EventTypeProductPricesChanged, AggregateTypeProduct, product.ID),
		ProductID:             product.ID,
		PurchasePriceCents:    product.PurchasePrice.Cents(),
		SalePriceCents:        product.SalePrice.Cents(),
		OldPurchasePriceCents: product.PreviousPurchasePrice.Cents(),
		OldSalePriceCents:     product.PreviousSalePrice.Cents(),
	}
}
