package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	catalogapp "github.com/movilshop/backend/internal/application/catalog"
	identityapp "github.com/movilshop/backend/internal/application/identity"
	layawayapp "github.com/movilshop/backend/internal/application/layaway"
	purchasingapp "github.com/movilshop/backend/internal/application/purchasing"
	reportapp "github.com/movilshop/backend/internal/application/report"
	salesapp "github.com/movilshop/backend/internal/application/sales"
	workshopapp "github.com/movilshop/backend/internal/application/workshop"
	"github.com/movilshop/backend/internal/infrastructure/auth"
	"github.com/movilshop/backend/internal/infrastructure/config"
	"github.com/movilshop/backend/internal/infrastructure/event"
	"github.com/movilshop/backend/internal/infrastructure/logger"
	"github.com/movilshop/backend/internal/infrastructure/persistence"
	"github.com/movilshop/backend/internal/interfaces/http/handler"
	"github.com/movilshop/backend/internal/interfaces/http/middleware"
	"github.com/movilshop/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting movilshop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	blacklist := newTokenBlacklist(cfg, log)

	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(event.NewAuditLogHandler(log))

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Transaction scopes
	purchasingScope := persistence.NewGormPurchasingTransactionScope(db.DB)
	salesScope := persistence.NewGormSalesTransactionScope(db.DB)
	workshopScope := persistence.NewGormWorkshopTransactionScope(db.DB)
	layawayScope := persistence.NewGormLayawayTransactionScope(db.DB)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT)

	// Application services
	productService := catalogapp.NewProductService(productRepo, movementRepo)

	purchaseService := purchasingapp.NewPurchaseService(purchaseRepo, purchasingScope)
	purchaseService.SetEventPublisher(bus)
	returnService := purchasingapp.NewPurchaseReturnService(purchaseRepo, purchasingScope)
	returnService.SetEventPublisher(bus)

	saleService := salesapp.NewSaleService(saleRepo, salesScope)
	saleService.SetEventPublisher(bus)

	ticketService := workshopapp.NewTicketService(ticketRepo, userRepo, workshopScope)
	ticketService.SetEventPublisher(bus)

	commissionRate, err := decimal.NewFromString(cfg.Workshop.CommissionRate)
	if err != nil {
		log.Fatal("Invalid workshop commission rate",
			zap.String("rate", cfg.Workshop.CommissionRate), zap.Error(err))
	}
	liquidationService := workshopapp.NewLiquidationService(ticketRepo, workshopScope, commissionRate)

	planService := layawayapp.NewPlanService(planRepo, layawayScope)
	planService.SetEventPublisher(bus)

	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log,
		cfg.Security.MaxFailedLogins, cfg.Security.LockoutDuration)
	userService := identityapp.NewUserService(userRepo, log)

	reportService := reportapp.NewReportService(saleRepo, purchaseRepo, productRepo, ticketRepo, planRepo)

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	jwtCfg := middleware.DefaultJWTConfig(jwtService, blacklist)
	jwtCfg.Logger = log

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsCfg),
		middleware.JWTAuth(jwtCfg),
	)

	handler.NewSystemHandler(db.DB, version).RegisterRoutes(engine)

	router.New(engine).Register(
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewProductHandler(productService),
		handler.NewPurchaseHandler(purchaseService, returnService),
		handler.NewSaleHandler(saleService),
		handler.NewTicketHandler(ticketService, liquidationService),
		handler.NewLayawayHandler(planService),
		handler.NewReportHandler(reportService),
	).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// newTokenBlacklist connects to redis when configured and falls back to the
// in-process blacklist otherwise. Without redis, revoked tokens come back to
// life on restart; acceptable for a single-shop deployment, not for more.
func newTokenBlacklist(cfg *config.Config, log *zap.Logger) auth.TokenBlacklist {
	if cfg.Redis.Host == "" {
		log.Warn("Redis not configured, using in-memory token blacklist")
		return auth.NewInMemoryTokenBlacklist()
	}

	blacklist := auth.NewRedisTokenBlacklist(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := blacklist.Ping(ctx); err != nil {
		log.Warn("Redis unreachable, using in-memory token blacklist", zap.Error(err))
		return auth.NewInMemoryTokenBlacklist()
	}

	log.Info("Redis token blacklist connected", zap.String("addr", cfg.Redis.Addr()))
	return blacklist
}
