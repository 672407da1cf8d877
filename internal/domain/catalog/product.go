package catalog

import (
	"fmt"
	"time"

	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
)

// Product represents a sellable item in the shop catalog.
// Stock is tracked directly on the product in whole units; every stock change
// goes through the aggregate so the quantity can never be driven negative.
type Product struct {
	shared.BaseAggregateRoot
	Name        string
	Code        string // internal SKU, unique
	Brand       string
	Category    string
	Description string
	Stock       int64
	MinStock    int64 // low-stock alert threshold
	// Current prices plus the previous values, kept so price history survives
	// edits without re-reading old records.
	PurchasePrice         valueobject.Money
	SalePrice             valueobject.Money
	PreviousPurchasePrice valueobject.Money
	PreviousSalePrice     valueobject.Money
	Active                bool
}

// NewProduct creates a new product
func NewProduct(name, code, brand, category string, purchasePrice, salePrice valueobject.Money, initialStock int64) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if purchasePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}
	if salePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}
	if initialStock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Initial stock cannot be negative")
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
		Brand:             brand,
		Category:          category,
		Stock:             initialStock,
		PurchasePrice:     purchasePrice,
		SalePrice:         salePrice,
		Active:            true,
	}

	p.AddDomainEvent(NewProductCreatedEvent(p))

	return p, nil
}

// UpdateDetails updates the descriptive fields of the product
func (p *Product) UpdateDetails(name, brand, category, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}

	p.Name = name
	p.Brand = brand
	p.Category = category
	p.Description = description
	p.touch()

	return nil
}

// ChangePrices updates the purchase and sale prices, keeping the previous
// values as a snapshot
func (p *Product) ChangePrices(purchasePrice, salePrice valueobject.Money) error {
	if purchasePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}
	if salePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}

	p.PreviousPurchasePrice = p.PurchasePrice
	p.PreviousSalePrice = p.SalePrice
	p.PurchasePrice = purchasePrice
	p.SalePrice = salePrice
	p.touch()

	p.AddDomainEvent(NewProductPricesChangedEvent(p))

	return nil
}

// SetMinStock sets the low-stock alert threshold
func (p *Product) SetMinStock(minStock int64) error {
	if minStock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Minimum stock cannot be negative")
	}
	p.MinStock = minStock
	p.touch()
	return nil
}

// IncreaseStock adds units to stock (goods received)
func (p *Product) IncreaseStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity to add must be positive")
	}
	p.Stock += quantity
	p.touch()
	return nil
}

// DecreaseStock removes units from stock (sales, purchase returns to supplier,
// parts consumed by repairs). Fails if the product does not hold enough units.
func (p *Product) DecreaseStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity to remove must be positive")
	}
	if quantity > p.Stock {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Cannot remove %d units of %s: only %d in stock", quantity, p.Name, p.Stock))
	}
	p.Stock -= quantity
	p.touch()
	return nil
}

// AdjustStock sets the stock to an absolute value (physical count correction)
func (p *Product) AdjustStock(newStock int64) error {
	if newStock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Adjusted stock cannot be negative")
	}
	p.Stock = newStock
	p.touch()
	return nil
}

// IsLowStock returns true if stock has fallen to or below the alert threshold
func (p *Product) IsLowStock() bool {
	return p.MinStock > 0 && p.Stock <= p.MinStock
}

// Deactivate removes the product from the sellable catalog without deleting it
func (p *Product) Deactivate() {
	p.Active = false
	p.touch()
}

// Activate returns the product to the sellable catalog
func (p *Product) Activate() {
	p.Active = true
	p.touch()
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
