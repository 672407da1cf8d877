package workshop

import (
	"context"

	"github.com/movilshop/backend/internal/domain/catalog"
	"github.com/movilshop/backend/internal/domain/inventory"
	"github.com/movilshop/backend/internal/domain/workshop"
)

// TransactionScope provides transactional access to the repositories a
// workshop operation touches. Consuming a spare part writes the ticket, the
// product, and the stock movement log in one database transaction; settling
// a liquidation writes every ticket it covers the same way.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a
// transaction.
type TransactionalRepositories interface {
	TicketRepo() workshop.TicketRepository
	ProductRepo() catalog.ProductRepository
	MovementRepo() inventory.StockMovementRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	ticketRepo   workshop.TicketRepository
	productRepo  catalog.ProductRepository
	movementRepo inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	ticketRepo workshop.TicketRepository,
	productRepo catalog.ProductRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		ticketRepo:   ticketRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// TicketRepo returns the ticket repository.
func (s *NoOpTransactionScope) TicketRepo() workshop.TicketRepository { return s.ticketRepo }

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// MovementRepo returns the stock movement repository.
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
