package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
)

// StockMovementRepository defines the interface for the append-only stock
// movement log
type StockMovementRepository interface {
	// Save appends a movement record; existing records are never updated
	Save(ctx context.Context, movement *StockMovement) error

	// FindByProduct finds movements for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockMovement, error)

	// FindByReference finds movements created by a specific source document
	FindByReference(ctx context.Context, referenceID uuid.UUID) ([]StockMovement, error)

	// FindAll finds movements matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockMovement, error)

	// Count counts movements matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
