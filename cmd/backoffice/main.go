package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/finops_backoffice/internal/core/services"
	"github.com/SscSPs/finops_backoffice/internal/handlers"
	"github.com/SscSPs/finops_backoffice/internal/middleware"
	"github.com/SscSPs/finops_backoffice/internal/platform/config"
	"github.com/SscSPs/finops_backoffice/internal/repositories/database/pgsql"
	"github.com/SscSPs/finops_backoffice/internal/repositories/memory"
	"github.com/SscSPs/finops_backoffice/internal/utils/validation"
	"github.com/SscSPs/finops_backoffice/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	portsrepo "github.com/SscSPs/finops_backoffice/internal/core/ports/repositories"
)

// @title FinOps Back-office API
// @version 1.0
// @description Order modules, invoice review, transactions and settings for the finance back-office.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	validation.RegisterWithGin()

	repos, storeKind, cleanup := setupRepositories(cfg, logger)
	defer cleanup()

	sessions := services.NewSessionStore()
	serviceContainer := services.NewServiceContainer(cfg, repos, sessions)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to configure rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader, "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter, storeKind)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", storeKind))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupRepositories picks PostgreSQL when PGSQL_URL is set and the seeded in-memory store otherwise.
func setupRepositories(cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, string, func()) {
	if !cfg.UsesDatabase() {
		logger.Info("Using in-memory store with sample data")
		return memory.NewRepositoryProvider(memory.NewSeededStore()), "memory", func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		dbPool.Close()
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.SeedMockData {
		if _, err := pgsql.SeedIfEmpty(ctx, dbPool, logger); err != nil {
			dbPool.Close()
			logger.Error("Failed to seed database", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	return pgsql.NewRepositoryProvider(dbPool), "postgres", func() { database.ClosePgxPool(dbPool) }
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
