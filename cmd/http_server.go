package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/tenant-ledger/api"
	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/account"
	accountPostgres "github.com/frahmantamala/tenant-ledger/internal/account/postgres"
	"github.com/frahmantamala/tenant-ledger/internal/auth"
	authPostgres "github.com/frahmantamala/tenant-ledger/internal/auth/postgres"
	"github.com/frahmantamala/tenant-ledger/internal/company"
	companyPostgres "github.com/frahmantamala/tenant-ledger/internal/company/postgres"
	"github.com/frahmantamala/tenant-ledger/internal/core/events"
	"github.com/frahmantamala/tenant-ledger/internal/purchase"
	purchasePostgres "github.com/frahmantamala/tenant-ledger/internal/purchase/postgres"
	"github.com/frahmantamala/tenant-ledger/internal/rbac"
	rbacPostgres "github.com/frahmantamala/tenant-ledger/internal/rbac/postgres"
	"github.com/frahmantamala/tenant-ledger/internal/sale"
	salePostgres "github.com/frahmantamala/tenant-ledger/internal/sale/postgres"
	"github.com/frahmantamala/tenant-ledger/internal/search"
	searchPostgres "github.com/frahmantamala/tenant-ledger/internal/search/postgres"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"github.com/frahmantamala/tenant-ledger/internal/transport/rest"
	"github.com/frahmantamala/tenant-ledger/internal/user"
	userPostgres "github.com/frahmantamala/tenant-ledger/internal/user/postgres"
	"github.com/frahmantamala/tenant-ledger/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Gorm     *gorm.DB
	EventBus *events.EventBus
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr, "base_url", deps.Config.Server.BaseURL)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	lg := deps.Logger
	base := transport.NewBaseHandler(lg)
	gdb := deps.Gorm

	tokens := auth.NewJWTTokenGeneratorFromConfig(cfg.Security)
	authz := rbac.NewAuthorization(rbac.NewGuard(rbacPostgres.NewRepository(gdb), lg), lg, cfg.Server.RedirectPath())

	handlers := rest.Handlers{
		Health:   rest.NewHealthHandler(base, deps.DB),
		Auth:     auth.NewHandler(base, auth.NewService(authPostgres.NewRepository(gdb), tokens, lg)),
		User:     user.NewHandler(base, user.NewService(userPostgres.NewRepository(gdb), lg)),
		Company:  company.NewHandler(base, company.NewService(companyPostgres.NewRepository(gdb), deps.EventBus, lg)),
		Search:   search.NewHandler(base, search.NewResolver(searchPostgres.NewRepository(deps.DB), cfg.Search, lg)),
		Account:  account.NewHandler(base, account.NewService(accountPostgres.NewRepository(gdb), deps.EventBus, lg)),
		Sale:     sale.NewHandler(base, sale.NewService(salePostgres.NewRepository(gdb), deps.EventBus, lg)),
		Purchase: purchase.NewHandler(base, purchase.NewService(purchasePostgres.NewRepository(gdb), deps.EventBus, lg)),
	}

	rest.RegisterAllRoutes(deps.Router, handlers, authz, cfg.Server, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Configure(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	// fail fast on a broken API document rather than serving it
	if _, err := api.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := initGorm(db, lg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	bus := events.NewEventBus(lg)
	events.SubscribeAudit(bus, lg)

	return &Dependencies{
		Config:   config,
		DB:       db,
		Gorm:     gdb,
		EventBus: bus,
		Router:   chi.NewRouter(),
		Logger:   lg,
	}, nil
}

// initDB opens the pgx-backed pool shared by sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return dbConn, nil
}

func initGorm(db *sqlx.DB, lg *slog.Logger) (*gorm.DB, error) {
	level := gormLogger.Warn
	if lg.Enabled(context.Background(), slog.LevelDebug) {
		level = gormLogger.Info
	}

	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger:                 gormLogger.Default.LogMode(level),
		SkipDefaultTransaction: true,
	})
}
