package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
)

// PurchaseItem represents one line within a purchase. Product name and the
// prices/stock in effect before the purchase are denormalized onto the line so
// later catalog edits never rewrite procurement history.
type PurchaseItem struct {
	ID          uuid.UUID
	PurchaseID  uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	UnitCost    valueobject.Money
	LineTotal   valueobject.Money // Quantity * UnitCost
	// Audit snapshot of the product at purchase time
	PreviousStock         int64
	PreviousPurchasePrice valueobject.Money
	PreviousSalePrice     valueobject.Money
	NewSalePrice          valueobject.Money
	CreatedAt             time.Time
}

// NewPurchaseItem creates a new purchase line
func NewPurchaseItem(
	purchaseID, productID uuid.UUID,
	productName string,
	quantity int64,
	unitCost valueobject.Money,
	previousStock int64,
	previousPurchasePrice, previousSalePrice, newSalePrice valueobject.Money,
) (*PurchaseItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Purchase quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit cost cannot be negative")
	}

	return &PurchaseItem{
		ID:                    uuid.New(),
		PurchaseID:            purchaseID,
		ProductID:             productID,
		ProductName:           productName,
		Quantity:              quantity,
		UnitCost:              unitCost,
		LineTotal:             unitCost.MulInt(quantity),
		PreviousStock:         previousStock,
		PreviousPurchasePrice: previousPurchasePrice,
		PreviousSalePrice:     previousSalePrice,
		NewSalePrice:          newSalePrice,
		CreatedAt:             time.Now(),
	}, nil
}

// Purchase represents a single procurement transaction aggregate root.
// The item list and total cost are fixed once recorded; the only mutation the
// aggregate accepts afterwards is appending a return. Total-returned and
// net-cost figures are always derived from the full return history rather than
// read from a running counter, so they cannot drift.
type Purchase struct {
	shared.BaseAggregateRoot
	Number  string // e.g. PC-20260829-0001
	Items   []PurchaseItem
	Notes   string
	Returns []PurchaseReturn
}

// NewPurchase creates a new, empty purchase
func NewPurchase(number, notes string) (*Purchase, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Purchase number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Purchase number cannot exceed 50 characters")
	}

	p := &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Notes:             notes,
		Items:             make([]PurchaseItem, 0),
		Returns:           make([]PurchaseReturn, 0),
	}

	p.AddDomainEvent(NewPurchaseCreatedEvent(p))

	return p, nil
}

// AddItem adds a line to the purchase. Lines can only be added while the
// purchase has no recorded returns; the item list is immutable afterwards.
func (p *Purchase) AddItem(
	productID uuid.UUID,
	productName string,
	quantity int64,
	unitCost valueobject.Money,
	previousStock int64,
	previousPurchasePrice, previousSalePrice, newSalePrice valueobject.Money,
) (*PurchaseItem, error) {
	if len(p.Returns) > 0 {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify items of a purchase with recorded returns")
	}
	for _, item := range p.Items {
		if item.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_ITEM", "Product already appears in this purchase")
		}
	}

	item, err := NewPurchaseItem(
		p.ID, productID, productName, quantity, unitCost,
		previousStock, previousPurchasePrice, previousSalePrice, newSalePrice,
	)
	if err != nil {
		return nil, err
	}

	p.Items = append(p.Items, *item)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return item, nil
}

// GetItem returns the purchase line for a product, or nil if the product is
// not part of this purchase
func (p *Purchase) GetItem(productID uuid.UUID) *PurchaseItem {
	for idx := range p.Items {
		if p.Items[idx].ProductID == productID {
			return &p.Items[idx]
		}
	}
	return nil
}

// TotalCost returns the original cost of the purchase (sum of line totals)
func (p *Purchase) TotalCost() valueobject.Money {
	total := valueobject.ZeroMoney()
	for _, item := range p.Items {
		total = total.Add(item.LineTotal)
	}
	return total
}

// TotalUnits returns the number of units originally purchased
func (p *Purchase) TotalUnits() int64 {
	var total int64
	for _, item := range p.Items {
		total += item.Quantity
	}
	return total
}

// ReturnableQuantity computes how many units of a product remain eligible for
// return: the originally purchased quantity minus every unit returned so far.
// Unknown products yield 0. The result is derived from the full return history
// on every call.
func (p *Purchase) ReturnableQuantity(productID uuid.UUID) int64 {
	item := p.GetItem(productID)
	if item == nil {
		return 0
	}

	var returned int64
	for _, ret := range p.Returns {
		for _, retItem := range ret.Items {
			if retItem.ProductID == productID {
				returned += retItem.ReturnedQuantity
			}
		}
	}

	return item.Quantity - returned
}

// GetTotalReturned returns the total amount refunded across all returns
func (p *Purchase) GetTotalReturned() valueobject.Money {
	total := valueobject.ZeroMoney()
	for _, ret := range p.Returns {
		total = total.Add(ret.TotalRefund)
	}
	return total
}

// GetNetCost returns the purchase cost net of all refunds received
func (p *Purchase) GetNetCost() valueobject.Money {
	return p.TotalCost().Subtract(p.GetTotalReturned())
}

// TotalReturnedUnits returns the number of units returned across all returns
func (p *Purchase) TotalReturnedUnits() int64 {
	var total int64
	for _, ret := range p.Returns {
		total += ret.TotalUnits
	}
	return total
}

// GetReturn returns a recorded return by its ID, or nil
func (p *Purchase) GetReturn(returnID uuid.UUID) *PurchaseReturn {
	for idx := range p.Returns {
		if p.Returns[idx].ID == returnID {
			return &p.Returns[idx]
		}
	}
	return nil
}

// RecordReturn validates the proposed items against the committed return
// history and, if they pass, appends an immutable return record. Recorded
// returns are never edited or removed; corrections require a new record.
func (p *Purchase) RecordReturn(proposed []ProposedReturnItem, reason, notes string) (*PurchaseReturn, error) {
	result := p.ValidateReturnItems(proposed)
	if !result.Valid {
		return nil, shared.NewDomainError("RETURN_REJECTED", result.ErrorMessage())
	}

	ret, err := newPurchaseReturn(p, proposed, reason, notes)
	if err != nil {
		return nil, err
	}

	p.Returns = append(p.Returns, *ret)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPurchaseReturnRecordedEvent(p, ret))

	return ret, nil
}

// SetNotes updates the free-text notes on the purchase
func (p *Purchase) SetNotes(notes string) {
	p.Notes = notes
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
