package workshop

import (
	"context"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
)

// TicketRepository defines the interface for service ticket persistence
type TicketRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceTicket, error)
	FindByNumber(ctx context.Context, number string) (*ServiceTicket, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*ServiceTicket, error)
	FindByStatus(ctx context.Context, status TicketStatus, filter shared.Filter) ([]*ServiceTicket, error)
	FindUnliquidatedDelivered(ctx context.Context) ([]*ServiceTicket, error)
	Save(ctx context.Context, ticket *ServiceTicket) error
	SaveWithLock(ctx context.Context, ticket *ServiceTicket) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	GenerateTicketNumber(ctx context.Context) (string, error)
}
