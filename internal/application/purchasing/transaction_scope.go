package purchasing

import (
	"context"

	"github.com/movilshop/backend/internal/domain/catalog"
	"github.com/movilshop/backend/internal/domain/inventory"
	"github.com/movilshop/backend/internal/domain/purchasing"
)

// TransactionScope provides transactional access to the repositories a
// purchase operation touches. When a function is executed within a scope,
// all repository operations are part of the same database transaction and
// commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
//
// A purchase operation spans three aggregates: the Purchase itself (items and
// return history), the Products whose stock and prices it moves, and the
// append-only StockMovement audit trail. Validation against returnable
// quantities is re-run against the purchase read inside the transaction, so a
// concurrent return cannot slip past a stale pre-check.
type TransactionalRepositories interface {
	// PurchaseRepo returns the purchase repository scoped to the current transaction
	PurchaseRepo() purchasing.PurchaseRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// MovementRepo returns the stock movement repository scoped to the current transaction
	MovementRepo() inventory.StockMovementRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	purchaseRepo purchasing.PurchaseRepository
	productRepo  catalog.ProductRepository
	movementRepo inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	purchaseRepo purchasing.PurchaseRepository,
	productRepo catalog.ProductRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PurchaseRepo returns the purchase repository.
func (s *NoOpTransactionScope) PurchaseRepo() purchasing.PurchaseRepository {
	return s.purchaseRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// MovementRepo returns the stock movement repository.
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
