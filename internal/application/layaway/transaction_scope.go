package layaway

import (
	"context"

	"github.com/movilshop/backend/internal/domain/catalog"
	"github.com/movilshop/backend/internal/domain/inventory"
	"github.com/movilshop/backend/internal/domain/layaway"
)

// TransactionScope provides transactional access to the repositories a
// layaway operation touches. Opening a plan reserves stock, cancelling one
// restores it; both write the plan, the products, and the movement log in
// one database transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a
// transaction.
type TransactionalRepositories interface {
	PlanRepo() layaway.PlanRepository
	ProductRepo() catalog.ProductRepository
	MovementRepo() inventory.StockMovementRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	planRepo     layaway.PlanRepository
	productRepo  catalog.ProductRepository
	movementRepo inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	planRepo layaway.PlanRepository,
	productRepo catalog.ProductRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		planRepo:     planRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PlanRepo returns the plan repository.
func (s *NoOpTransactionScope) PlanRepo() layaway.PlanRepository { return s.planRepo }

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// MovementRepo returns the stock movement repository.
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
