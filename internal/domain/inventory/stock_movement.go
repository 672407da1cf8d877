package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
)

// MovementType classifies why stock changed
type MovementType string

const (
	MovementTypePurchase       MovementType = "PURCHASE"        // goods received from supplier
	MovementTypePurchaseReturn MovementType = "PURCHASE_RETURN" // goods sent back to supplier
	MovementTypeSale           MovementType = "SALE"            // sold over the counter
	MovementTypeSaleReturn     MovementType = "SALE_RETURN"     // customer brought goods back
	MovementTypeTicketPart     MovementType = "TICKET_PART"     // part consumed by a repair
	MovementTypeLayaway        MovementType = "LAYAWAY"         // reserved under a layaway plan
	MovementTypeLayawayRelease MovementType = "LAYAWAY_RELEASE" // layaway cancelled, stock restored
	MovementTypeAdjustment     MovementType = "ADJUSTMENT"      // physical count correction
)

// IsValid checks if the movement type is known
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypePurchase, MovementTypePurchaseReturn, MovementTypeSale,
		MovementTypeSaleReturn, MovementTypeTicketPart, MovementTypeLayaway,
		MovementTypeLayawayRelease, MovementTypeAdjustment:
		return true
	}
	return false
}

// StockMovement is an append-only audit record of a single stock change.
// Movements are written in the same transaction as the product stock update
// and are never edited or deleted.
type StockMovement struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	ProductName  string // snapshot
	Type         MovementType
	Quantity     int64 // signed: positive adds stock, negative removes it
	StockAfter   int64 // product stock after the movement applied
	ReferenceID  uuid.UUID
	ReferenceDoc string // e.g. purchase number, sale number
	Note         string
	CreatedAt    time.Time
}

// NewStockMovement creates a new stock movement record
func NewStockMovement(
	productID uuid.UUID,
	productName string,
	movementType MovementType,
	quantity, stockAfter int64,
	referenceID uuid.UUID,
	referenceDoc, note string,
) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown stock movement type")
	}
	if quantity == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity cannot be zero")
	}
	if stockAfter < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock after movement cannot be negative")
	}

	return &StockMovement{
		ID:           uuid.New(),
		ProductID:    productID,
		ProductName:  productName,
		Type:         movementType,
		Quantity:     quantity,
		StockAfter:   stockAfter,
		ReferenceID:  referenceID,
		ReferenceDoc: referenceDoc,
		Note:         note,
		CreatedAt:    time.Now(),
	}, nil
}
