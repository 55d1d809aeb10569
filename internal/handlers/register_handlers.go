package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/clubops/clubledger/cmd/docs"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/middleware"
	"github.com/clubops/clubledger/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, services)

	setupAPIV1Routes(r, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(services.Token))

	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Journal, services.User)
	registerReportRoutes(v1, services.Ledger)
	registerUserRoutes(v1, services.User)
	registerWalletRoutes(v1, services.Wallet, services.User)
	registerInvoiceRoutes(v1, services.Billing, services.User)
	registerInventoryRoutes(v1, services.Inventory)
	registerCheckRoutes(v1, services.Check)
	registerPayrollRoutes(v1, services.Payroll, services.User)
	registerSnapshotRoutes(v1, services.Snapshot, services.User)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
