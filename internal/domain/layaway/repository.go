package layaway

import (
	"context"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
)

// PlanRepository defines the interface for layaway plan persistence
type PlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	FindByNumber(ctx context.Context, number string) (*Plan, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Plan, error)
	FindByStatus(ctx context.Context, status PlanStatus, filter shared.Filter) ([]*Plan, error)
	FindOverdue(ctx context.Context) ([]*Plan, error)
	Save(ctx context.Context, plan *Plan) error
	SaveWithLock(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	GeneratePlanNumber(ctx context.Context) (string, error)
}
