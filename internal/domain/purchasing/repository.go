package purchasing

import (
	"context"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
)

// PurchaseRepository defines the interface for purchase persistence. A
// purchase is always loaded and saved with its full item list and return
// history, since every derived figure is recomputed from them.
type PurchaseRepository interface {
	// FindByID finds a purchase by its ID, including items and returns
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)

	// FindByNumber finds a purchase by its purchase number
	FindByNumber(ctx context.Context, number string) (*Purchase, error)

	// FindAll finds all purchases matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, error)

	// Save creates or updates a purchase with its items and returns
	Save(ctx context.Context, purchase *Purchase) error

	// SaveWithLock saves a purchase with optimistic lock version checking
	SaveWithLock(ctx context.Context, purchase *Purchase) error

	// Delete deletes a purchase
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts purchases matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GeneratePurchaseNumber generates the next sequential purchase number
	GeneratePurchaseNumber(ctx context.Context) (string, error)
}
