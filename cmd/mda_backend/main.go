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

	"github.com/SscSPs/mda_posting_engine/internal/audit"
	"github.com/SscSPs/mda_posting_engine/internal/core/services"
	"github.com/SscSPs/mda_posting_engine/internal/handlers"
	"github.com/SscSPs/mda_posting_engine/internal/middleware"
	"github.com/SscSPs/mda_posting_engine/internal/platform/config"
	"github.com/SscSPs/mda_posting_engine/internal/platform/otel"
	"github.com/SscSPs/mda_posting_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/mda_posting_engine/internal/resilience"
	"github.com/SscSPs/mda_posting_engine/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// @title MDA Posting Engine API
// @version 1.0
// @description Turns business finance events into balanced, period-gated general ledger postings.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, cfg.OTelServiceName, cfg.OTelEndpoint)
	if err != nil {
		logger.Error("Failed to set up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns:    cfg.DBMaxConns,
		PingOnStart: cfg.EnableDBCheck,
	})
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations", logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		database.ClosePgxPool(dbPool)
		os.Exit(1)
	}

	repos := resilience.WrapRepositories(pgsql.NewRepositoryProvider(dbPool), resilience.Policy{
		MaxAttempts:     cfg.Resilience.MaxAttempts,
		InitialInterval: cfg.Resilience.InitialInterval,
		MaxInterval:     cfg.Resilience.MaxInterval,
		MaxElapsed:      cfg.Resilience.MaxElapsed,
		CallTimeout:     cfg.Resilience.CallTimeout,
	})

	recorder := audit.NewRecorder(repos.AuditRepo,
		audit.WithBatchSize(cfg.Audit.BatchSize),
		audit.WithFlushInterval(cfg.Audit.FlushInterval))
	recorder.Start()

	serviceContainer := services.NewServiceContainer(cfg, repos, recorder)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", handlers.IdempotencyKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	if err := recorder.Close(shutdownCtx); err != nil {
		logger.Error("Failed to flush audit entries", slog.String("error", err.Error()))
	}
	database.ClosePgxPool(dbPool)
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Failed to flush traces", slog.String("error", err.Error()))
	}
	logger.Info("Server exited")
}
