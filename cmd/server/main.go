package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vikasavn/dukaan/internal"
	"github.com/vikasavn/dukaan/internal/handler"
	"github.com/vikasavn/dukaan/internal/numbering"
	"github.com/vikasavn/dukaan/internal/postgres"
	"github.com/vikasavn/dukaan/internal/service"
	"github.com/vikasavn/dukaan/internal/telemetry"
	"github.com/vikasavn/dukaan/internal/worker"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		sqlDB.Close()
		return fmt.Errorf("migration failed: %w", err)
	}
	sqlDB.Close()
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for the application
	pool, err := postgres.Connect(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	queries := postgres.New(pool)

	// Business metrics
	telemetry.InitBusinessMetrics(cfg.MetricsNamespace)

	// Services
	store := service.NewStore(queries)
	companyService := postgres.NewCompanyService(queries)
	storeService := postgres.NewStoreService(queries)
	itemService := postgres.NewItemService(queries)
	inventoryService := service.NewInventoryService(pool, store, logger)
	transferService := service.NewTransferService(pool, store, logger)
	invoiceService := service.NewInvoiceService(pool, store, numbering.New(logger), logger)

	// Background worker
	if cfg.Worker.Enabled {
		w := worker.NewWorker(queries, &worker.LogNotifier{Logger: logger}, worker.Config{
			PollInterval:   cfg.Worker.PollInterval,
			MaxConcurrency: cfg.Worker.MaxConcurrency,
			Queue:          cfg.Worker.Queue,
		}, logger)
		go func() {
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("worker stopped", "error", err)
			}
		}()
	}

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())

	h := handler.New(
		companyService,
		storeService,
		itemService,
		inventoryService,
		transferService,
		invoiceService,
		logger,
	)
	h.Register(e)

	addr := fmt.Sprintf(":%d", cfg.Port)
	go func() {
		logger.Info("Starting server", "address", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("Shutdown complete")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
