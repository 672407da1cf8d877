package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/movilshop/backend/internal/domain/identity"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/infrastructure/config"
	"github.com/movilshop/backend/internal/infrastructure/logger"
	"github.com/movilshop/backend/internal/infrastructure/persistence"
	"github.com/movilshop/backend/internal/infrastructure/persistence/models"
)

func main() {
	var (
		logLevel      string
		seedAdmin     bool
		adminUser     string
		adminPassword string
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&seedAdmin, "seed-admin", false, "Create the initial admin account if no users exist")
	flag.StringVar(&adminUser, "admin-user", "admin", "Username for the seeded admin account")
	flag.StringVar(&adminPassword, "admin-password", "", "Password for the seeded admin account (required with -seed-admin)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	log.Info("Running schema migration", zap.String("database", cfg.Database.DBName))

	if err := db.DB.AutoMigrate(
		&models.ProductModel{},
		&models.StockMovementModel{},
		&models.PurchaseModel{},
		&models.PurchaseItemModel{},
		&models.PurchaseReturnModel{},
		&models.PurchaseReturnItemModel{},
		&models.SaleModel{},
		&models.SaleItemModel{},
		&models.ServiceTicketModel{},
		&models.TicketPartModel{},
		&models.PlanModel{},
		&models.PlanItemModel{},
		&models.PaymentModel{},
		&models.UserModel{},
	); err != nil {
		log.Fatal("Schema migration failed", zap.Error(err))
	}
	log.Info("Schema migration complete")

	if seedAdmin {
		if adminPassword == "" {
			log.Fatal("-admin-password is required with -seed-admin")
		}
		if err := seedAdminUser(db, adminUser, adminPassword); err != nil {
			log.Fatal("Failed to seed admin account", zap.Error(err))
		}
		log.Info("Admin account ready", zap.String("username", adminUser))
	}
}

// seedAdminUser creates the first admin account. It refuses to run once any
// user exists so a forgotten flag cannot reset credentials.
func seedAdminUser(db *persistence.Database, username, password string) error {
	ctx := context.Background()
	userRepo := persistence.NewGormUserRepository(db.DB)

	count, err := userRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("users already exist, refusing to seed admin")
	}

	admin, err := identity.NewUser(username, "Administrator", password, identity.RoleAdmin)
	if err != nil {
		return err
	}
	return userRepo.Save(ctx, admin)
}
