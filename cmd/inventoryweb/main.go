package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/odyssey-erp/inventory-web/internal/app"
	"github.com/odyssey-erp/inventory-web/internal/backend"
	"github.com/odyssey-erp/inventory-web/internal/dashboard"
	"github.com/odyssey-erp/inventory-web/internal/inventory"
	"github.com/odyssey-erp/inventory-web/internal/observability"
	"github.com/odyssey-erp/inventory-web/internal/platform/cache"
	"github.com/odyssey-erp/inventory-web/internal/reports"
	"github.com/odyssey-erp/inventory-web/internal/shared"
	"github.com/odyssey-erp/inventory-web/internal/transactions"
	"github.com/odyssey-erp/inventory-web/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Default().Warn("load .env", slog.Any("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "inventory_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("display timezone", slog.Any("error", err))
		os.Exit(1)
	}
	format := shared.NewFormatter(cfg.CurrencySymbol, loc)

	templates, err := view.NewEngine(format)
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	client := backend.NewClient(cfg.BackendURL, logger,
		backend.WithRecorder(metrics),
		backend.WithSharedTimeout(cfg.AppRequestTimeout))

	gotenberg := reports.NewGotenberg(cfg.GotenbergURL)
	if err := gotenberg.Ping(ctx); err != nil {
		logger.Warn("gotenberg ping", slog.Any("error", err))
	}

	dashboardHandler := dashboard.NewHandler(logger, client, templates, csrfManager)
	inventoryHandler := inventory.NewHandler(logger, client, templates, csrfManager, sessionManager)
	transactionsHandler := transactions.NewHandler(logger, client, templates, csrfManager)
	reportsHandler := reports.NewHandler(logger, client, templates, csrfManager, gotenberg)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		Templates:           templates,
		SessionManager:      sessionManager,
		CSRFManager:         csrfManager,
		DashboardHandler:    dashboardHandler,
		InventoryHandler:    inventoryHandler,
		TransactionsHandler: transactionsHandler,
		ReportsHandler:      reportsHandler,
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("backend", client.BaseURL()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
