package persistence

import (
	"context"

	applayaway "github.com/movilshop/backend/internal/application/layaway"
	apppurchasing "github.com/movilshop/backend/internal/application/purchasing"
	appsales "github.com/movilshop/backend/internal/application/sales"
	appworkshop "github.com/movilshop/backend/internal/application/workshop"
	"github.com/movilshop/backend/internal/domain/catalog"
	"github.com/movilshop/backend/internal/domain/inventory"
	"github.com/movilshop/backend/internal/domain/layaway"
	"github.com/movilshop/backend/internal/domain/purchasing"
	"github.com/movilshop/backend/internal/domain/sales"
	"github.com/movilshop/backend/internal/domain/workshop"
	"gorm.io/gorm"
)

// GormPurchasingTransactionScope implements the purchasing TransactionScope
// using GORM transactions. Purchase writes, product price/stock updates and
// stock movement appends commit or roll back together.
type GormPurchasingTransactionScope struct {
	db *gorm.DB
}

// NewGormPurchasingTransactionScope creates a new GormPurchasingTransactionScope
func NewGormPurchasingTransactionScope(db *gorm.DB) *GormPurchasingTransactionScope {
	return &GormPurchasingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormPurchasingTransactionScope) Execute(ctx context.Context, fn func(repos apppurchasing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormPurchasingRepositories{tx: tx})
	})
}

type gormPurchasingRepositories struct {
	tx *gorm.DB
}

func (r *gormPurchasingRepositories) PurchaseRepo() purchasing.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

func (r *gormPurchasingRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormPurchasingRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// GormSalesTransactionScope implements the sales TransactionScope using GORM
// transactions
type GormSalesTransactionScope struct {
	db *gorm.DB
}

// NewGormSalesTransactionScope creates a new GormSalesTransactionScope
func NewGormSalesTransactionScope(db *gorm.DB) *GormSalesTransactionScope {
	return &GormSalesTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormSalesTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSalesRepositories{tx: tx})
	})
}

type gormSalesRepositories struct {
	tx *gorm.DB
}

func (r *gormSalesRepositories) SaleRepo() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormSalesRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormSalesRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// GormWorkshopTransactionScope implements the workshop TransactionScope using
// GORM transactions
type GormWorkshopTransactionScope struct {
	db *gorm.DB
}

// NewGormWorkshopTransactionScope creates a new GormWorkshopTransactionScope
func NewGormWorkshopTransactionScope(db *gorm.DB) *GormWorkshopTransactionScope {
	return &GormWorkshopTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormWorkshopTransactionScope) Execute(ctx context.Context, fn func(repos appworkshop.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormWorkshopRepositories{tx: tx})
	})
}

type gormWorkshopRepositories struct {
	tx *gorm.DB
}

func (r *gormWorkshopRepositories) TicketRepo() workshop.TicketRepository {
	return NewGormTicketRepository(r.tx)
}

func (r *gormWorkshopRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormWorkshopRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// GormLayawayTransactionScope implements the layaway TransactionScope using
// GORM transactions
type GormLayawayTransactionScope struct {
	db *gorm.DB
}

// NewGormLayawayTransactionScope creates a new GormLayawayTransactionScope
func NewGormLayawayTransactionScope(db *gorm.DB) *GormLayawayTransactionScope {
	return &GormLayawayTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormLayawayTransactionScope) Execute(ctx context.Context, fn func(repos applayaway.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormLayawayRepositories{tx: tx})
	})
}

type gormLayawayRepositories struct {
	tx *gorm.DB
}

func (r *gormLayawayRepositories) PlanRepo() layaway.PlanRepository {
	return NewGormPlanRepository(r.tx)
}

func (r *gormLayawayRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormLayawayRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// Interface conformance checks
var (
	_ apppurchasing.TransactionScope            = (*GormPurchasingTransactionScope)(nil)
	_ apppurchasing.TransactionalRepositories   = (*gormPurchasingRepositories)(nil)
	_ appsales.TransactionScope                 = (*GormSalesTransactionScope)(nil)
	_ appsales.TransactionalRepositories        = (*gormSalesRepositories)(nil)
	_ appworkshop.TransactionScope              = (*GormWorkshopTransactionScope)(nil)
	_ appworkshop.TransactionalRepositories     = (*gormWorkshopRepositories)(nil)
	_ applayaway.TransactionScope               = (*GormLayawayTransactionScope)(nil)
	_ applayaway.TransactionalRepositories      = (*gormLayawayRepositories)(nil)
)
