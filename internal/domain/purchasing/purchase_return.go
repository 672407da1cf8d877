package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
)

// PurchaseReturnItem represents one product line within a return. The
// originally purchased quantity is snapshotted for display and the unit cost
// must match the original line exactly.
type PurchaseReturnItem struct {
	ID               uuid.UUID
	ReturnID         uuid.UUID
	ProductID        uuid.UUID
	ProductName      string
	ReturnedQuantity int64
	OriginalQuantity int64 // quantity on the original purchase line
	UnitCost         valueobject.Money
	TotalRefund      valueobject.Money // UnitCost * ReturnedQuantity
	Reason           string
	CreatedAt        time.Time
}

// PurchaseReturn represents one return event against a purchase. Once recorded
// it is immutable: it is never edited or deleted, only ever read.
type PurchaseReturn struct {
	ID          uuid.UUID
	PurchaseID  uuid.UUID
	Items       []PurchaseReturnItem
	TotalRefund valueobject.Money // sum of item refunds
	TotalUnits  int64             // sum of returned quantities
	Reason      string
	Notes       string
	CreatedAt   time.Time
}

// ProposedReturnItem is a candidate line for a new return, as assembled by a
// caller. The unit cost is caller-supplied and checked against the original
// purchase line to guard against stale or tampered price data.
type ProposedReturnItem struct {
	ProductID        uuid.UUID
	ReturnedQuantity int64
	UnitCost         valueobject.Money
	Reason           string
}

// newPurchaseReturn builds the immutable return record from already-validated
// proposed items. Callers must run ValidateReturnItems first; this only guards
// against structurally broken input.
func newPurchaseReturn(purchase *Purchase, proposed []ProposedReturnItem, reason, notes string) (*PurchaseReturn, error) {
	if purchase == nil || purchase.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PURCHASE", "Purchase is missing an identifier")
	}
	if len(proposed) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Cannot record a return without items")
	}

	now := time.Now()
	ret := &PurchaseReturn{
		ID:          uuid.New(),
		PurchaseID:  purchase.ID,
		Items:       make([]PurchaseReturnItem, 0, len(proposed)),
		TotalRefund: valueobject.ZeroMoney(),
		Reason:      reason,
		Notes:       notes,
		CreatedAt:   now,
	}

	for _, pi := range proposed {
		original := purchase.GetItem(pi.ProductID)
		if original == nil {
			return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Product is not part of this purchase")
		}

		item := PurchaseReturnItem{
			ID:               uuid.New(),
			ReturnID:         ret.ID,
			ProductID:        pi.ProductID,
			ProductName:      original.ProductName,
			ReturnedQuantity: pi.ReturnedQuantity,
			OriginalQuantity: original.Quantity,
			UnitCost:         original.UnitCost,
			TotalRefund:      original.UnitCost.MulInt(pi.ReturnedQuantity),
			Reason:           pi.Reason,
			CreatedAt:        now,
		}

		ret.Items = append(ret.Items, item)
		ret.TotalRefund = ret.TotalRefund.Add(item.TotalRefund)
		ret.TotalUnits += item.ReturnedQuantity
	}

	return ret, nil
}
