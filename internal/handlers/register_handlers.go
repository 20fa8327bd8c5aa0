package handlers

import (
	"log/slog"
	"net/http"

	"github.com/algoplusmessflow-tech/Messflow-sub001/cmd/docs"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/middleware"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	if err := RegisterValidators(); err != nil {
		slog.Error("Failed to register request validators", slog.String("error", err.Error()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if cfg.ReceiptsDir != "" && cfg.ReceiptsBaseURL != "" {
		r.Static(cfg.ReceiptsBaseURL, cfg.ReceiptsDir)
	}

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		middleware.SubscriptionGate(services.Profile, nil),
	)

	registerProfileRoutes(v1, services.Profile, services.PlanLimit, services.Insights)
	registerMemberRoutes(v1, services.Member, services.Profile)
	registerTransactionRoutes(v1, services.Transaction)
	registerExpenseRoutes(v1, services.Expense)
	registerPettyCashRoutes(v1, services.PettyCash, services.Profile)
	registerPayrollRoutes(v1, services.Payroll)
	registerInventoryRoutes(v1, services.Inventory)
	registerInsightsRoutes(v1, services.Insights, services.Reporting)
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
