package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/orbit_finance/internal/adapters/ai/openai"
	"github.com/SscSPs/orbit_finance/internal/adapters/storage"
	"github.com/SscSPs/orbit_finance/internal/core/services"
	"github.com/SscSPs/orbit_finance/internal/handlers"
	"github.com/SscSPs/orbit_finance/internal/middleware"
	"github.com/SscSPs/orbit_finance/internal/platform/config"
	"github.com/SscSPs/orbit_finance/internal/repositories/dataset"
	"github.com/SscSPs/orbit_finance/internal/repositories/guarded"
	"github.com/SscSPs/orbit_finance/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// @title Orbit Finance API
// @version 1.0
// @description Shared workspaces, transactions and AI advice for Orbit Finance.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Persistence ---
	kv, err := storage.OpenBackend(ctx, storage.BackendOptions{
		Backend:       cfg.StoreBackend,
		FilePath:      cfg.StoreFilePath,
		SQLitePath:    cfg.SQLitePath,
		PostgresURL:   cfg.DatabaseURL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	}, logger)
	if err != nil {
		logger.Error("Failed to open store backend", slog.String("backend", cfg.StoreBackend), slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := kv.Close(); cerr != nil {
			logger.Error("Error closing store backend", slog.String("error", cerr.Error()))
		}
	}()
	logger.Info("Store backend ready", slog.String("backend", cfg.StoreBackend), slog.String("namespace", cfg.StoreNamespace))

	repo := guarded.New(
		dataset.New(storage.NewDatasetStore(kv, storage.WithNamespace(cfg.StoreNamespace))),
		guarded.Policy{EnforceAdmin: cfg.EnforceAdminPolicy},
	)

	// --- Services ---
	advisor := openai.NewAdvisor(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, advice will use the fallback message")
	}
	container := services.NewServiceContainer(repo, advisor, services.WithAdviceTransactionLimit(cfg.AIMaxTransactions))

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	// --- HTTP ---
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := middleware.NewHTTPMetrics(registry)

	limiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		return err
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.Metrics(httpMetrics),
		middleware.RateLimit(limiter),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		return err
	}

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	handlers.RegisterRoutes(r, cfg, container)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
