package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByCode finds a product by its SKU code
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindActive finds all active products
	FindActive(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindLowStock finds active products at or below their minimum stock level
	FindLowStock(ctx context.Context) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock saves a product with optimistic lock version checking
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
