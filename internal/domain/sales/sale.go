package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	}
	return false
}

// SaleItem represents one line of a counter sale. Product name and sale price
// are snapshotted at sale time.
type SaleItem struct {
	ID          uuid.UUID
	SaleID      uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	UnitPrice   valueobject.Money
	LineTotal   valueobject.Money
	CreatedAt   time.Time
}

// Sale represents a completed point-of-sale transaction. Sales are recorded
// once, with stock already decremented in the same unit of work; they carry no
// draft state.
type Sale struct {
	shared.BaseAggregateRoot
	Number        string
	Items         []SaleItem
	PaymentMethod PaymentMethod
	CustomerName  string
	Discount      valueobject.Money
	Notes         string
	SoldBy        uuid.UUID // user who rang up the sale
}

// NewSale creates a new sale
func NewSale(number string, paymentMethod PaymentMethod, customerName string, soldBy uuid.UUID) (*Sale, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Sale number cannot be empty")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	s := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		PaymentMethod:     paymentMethod,
		CustomerName:      customerName,
		Discount:          valueobject.ZeroMoney(),
		SoldBy:            soldBy,
		Items:             make([]SaleItem, 0),
	}

	return s, nil
}

// AddItem adds a line to the sale
func (s *Sale) AddItem(productID uuid.UUID, productName string, quantity int64, unitPrice valueobject.Money) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Sale quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	item := SaleItem{
		ID:          uuid.New(),
		SaleID:      s.ID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.MulInt(quantity),
		CreatedAt:   time.Now(),
	}

	s.Items = append(s.Items, item)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return &s.Items[len(s.Items)-1], nil
}

// SetDiscount applies a whole-ticket discount
func (s *Sale) SetDiscount(discount valueobject.Money) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.GreaterThan(s.Subtotal()) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the sale subtotal")
	}
	s.Discount = discount
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Complete finalizes the sale, requiring at least one item
func (s *Sale) Complete() error {
	if len(s.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot complete a sale without items")
	}
	s.AddDomainEvent(NewSaleCompletedEvent(s))
	return nil
}

// Subtotal returns the sum of line totals before discount
func (s *Sale) Subtotal() valueobject.Money {
	total := valueobject.ZeroMoney()
	for _, item := range s.Items {
		total = total.Add(item.LineTotal)
	}
	return total
}

// Total returns the amount charged (subtotal minus discount)
func (s *Sale) Total() valueobject.Money {
	return s.Subtotal().Subtract(s.Discount)
}

// TotalUnits returns the number of units sold
func (s *Sale) TotalUnits() int64 {
	var total int64
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}
