package handlers

import (
	"github.com/SscSPs/finops_backoffice/cmd/docs"
	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/SscSPs/finops_backoffice/internal/middleware"
	"github.com/SscSPs/finops_backoffice/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// storeKind is reported by the health check ("memory" or "postgres").
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
	storeKind string,
) {
	r.GET("/health", getHealth(storeKind))

	// tokens are minted for any seeded user, so never in production
	if !cfg.IsProduction {
		registerAuthRoutes(r, services.Tokens)
	}

	setupAPIV1Routes(r, cfg, services, rateLimiter)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	// auth first so the limiter can key by user
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	if rateLimiter != nil {
		v1.Use(middleware.RateLimit(rateLimiter))
	}

	requirePerm := func(perm domain.PermissionID) gin.HandlerFunc {
		return middleware.RequirePermission(service.Access, perm)
	}

	registerSessionRoutes(v1, service.Session)
	registerOrderRoutes(v1, service.Orders)
	registerInvoiceReviewRoutes(v1.Group("", requirePerm(domain.PermAccessInvoiceReview)), service.InvoiceReview)
	registerServiceCaseRoutes(v1.Group("", requirePerm(domain.PermAccessServices)), service.ServiceCases)
	registerTransactionRoutes(v1.Group("", requirePerm(domain.PermAccessTransactions)), service.Transactions)
	registerSettingsRoutes(v1.Group("", requirePerm(domain.PermAccessSettings)), service.Access)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
