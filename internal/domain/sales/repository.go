package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale by its ID, including items
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByNumber finds a sale by its sale number
	FindByNumber(ctx context.Context, number string) (*Sale, error)

	// FindAll finds sales matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)

	// Save creates or updates a sale with its items
	Save(ctx context.Context, sale *Sale) error

	// Count counts sales matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SumTotalBetween returns the summed sale totals (in cents) in a period
	SumTotalBetween(ctx context.Context, from, to time.Time) (int64, error)

	// GenerateSaleNumber generates the next sequential sale number
	GenerateSaleNumber(ctx context.Context) (string, error)
}
