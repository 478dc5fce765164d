package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/agenticsoft/gescom/internal"
	"github.com/agenticsoft/gescom/internal/auth"
	authsqlite "github.com/agenticsoft/gescom/internal/auth/sqlite"
	"github.com/agenticsoft/gescom/internal/document"
	documentsqlite "github.com/agenticsoft/gescom/internal/document/sqlite"
	"github.com/agenticsoft/gescom/internal/partner"
	partnersqlite "github.com/agenticsoft/gescom/internal/partner/sqlite"
	"github.com/agenticsoft/gescom/internal/payment"
	paymentsqlite "github.com/agenticsoft/gescom/internal/payment/sqlite"
	"github.com/agenticsoft/gescom/internal/product"
	productsqlite "github.com/agenticsoft/gescom/internal/product/sqlite"
	"github.com/agenticsoft/gescom/internal/schema"
	"github.com/agenticsoft/gescom/internal/settings"
	settingssqlite "github.com/agenticsoft/gescom/internal/settings/sqlite"
	"github.com/agenticsoft/gescom/internal/transport/rest"
	"github.com/agenticsoft/gescom/internal/transport/swagger"
	"github.com/agenticsoft/gescom/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Run migrations, seed defaults and start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	GormDB   *gorm.DB
	SQLDB    *sql.DB
	SqlxDB   *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.SQLDB, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.SQLDB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	gormDB, sqlDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	ctx := context.Background()

	// Schema first, then defaults and the bootstrap account
	store := schema.NewStore(sqlDB, schema.Migrations(), config.Database.Driver, lg)
	if err := store.ApplyPending(ctx); err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	settingsService := settings.NewService(settingssqlite.NewSettingsRepository(gormDB), lg)
	if err := settingsService.EnsureDefaults(); err != nil {
		return nil, fmt.Errorf("failed to seed default settings: %w", err)
	}

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authsqlite.NewAuthRepository(gormDB), tokenGen, config.Security.BCryptCost, lg)
	if err := authService.Bootstrap(); err != nil {
		return nil, fmt.Errorf("failed to bootstrap auth: %w", err)
	}

	if err := swagger.ValidateSpecFile(ctx, "./api/openapi.yml"); err != nil {
		lg.Warn("openapi spec unavailable, swagger UI disabled", "error", err)
	}

	sqlxDB := sqlx.NewDb(sqlDB, sqlxDriverName(config.Database.Driver))

	documentService := document.NewService(documentsqlite.NewDocumentRepository(gormDB), settingsService, lg)
	partnerService := partner.NewService(partnersqlite.NewPartnerRepository(gormDB), lg)
	productService := product.NewService(productsqlite.NewProductRepository(gormDB), lg)
	paymentService := payment.NewService(
		paymentsqlite.NewPaymentRepository(gormDB),
		paymentsqlite.NewCashSummaryReader(sqlxDB),
		lg,
	)

	handlers := rest.Handlers{
		Auth:     auth.NewHandler(authService),
		Settings: settings.NewHandler(settingsService),
		Document: document.NewHandler(documentService),
		Partner:  partner.NewHandler(partnerService),
		Product:  product.NewHandler(productService),
		Payment:  payment.NewHandler(paymentService),
	}

	return &Dependencies{
		Config:   config,
		GormDB:   gormDB,
		SQLDB:    sqlDB,
		SqlxDB:   sqlxDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		Logger:   lg,
	}, nil
}

// initDB opens the configured database through GORM and exposes the
// underlying *sql.DB for the migration store and health checks.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, *sql.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case internal.DriverPostgres:
		dialector = gormpostgres.Open(cfg.GetDSN())
	default:
		dialector = gormsqlite.Open(sqliteDSN(cfg.GetDSN()))
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to access db connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close on failure
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return gormDB, sqlDB, nil
}

// sqliteDSN enables foreign key enforcement, which SQLite leaves off
// per connection unless asked.
func sqliteDSN(source string) string {
	if strings.Contains(source, "_foreign_keys") {
		return source
	}
	sep := "?"
	if strings.Contains(source, "?") {
		sep = "&"
	}
	return source + sep + "_foreign_keys=on"
}

func sqlxDriverName(driver string) string {
	if driver == internal.DriverPostgres {
		return "pgx"
	}
	return "sqlite3"
}
