package persistence

import (
	"fmt"
	"testing"

	"github.com/movilshop/backend/internal/domain/shared/valueobject"
	"github.com/movilshop/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database with the full schema
// migrated. Each test gets its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.ProductModel{},
		&models.PurchaseModel{},
		&models.PurchaseItemModel{},
		&models.PurchaseReturnModel{},
		&models.PurchaseReturnItemModel{},
		&models.StockMovementModel{},
		&models.SaleModel{},
		&models.SaleItemModel{},
		&models.ServiceTicketModel{},
		&models.TicketPartModel{},
		&models.PlanModel{},
		&models.PlanItemModel{},
		&models.PaymentModel{},
		&models.UserModel{},
	))

	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func cents(v int64) valueobject.Money {
	return valueobject.NewMoneyFromCents(v)
}
