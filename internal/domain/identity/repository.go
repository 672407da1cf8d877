package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*User, error)
	FindByRole(ctx context.Context, role Role) ([]*User, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
