package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"tradeflow/internal/handler"
	"tradeflow/internal/middleware"
	"tradeflow/internal/port"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Tariff  *handler.TariffHandler
	Admin   *handler.AdminHandler
	Health  *handler.HealthHandler
	Metrics http.Handler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(l *zap.Logger, allowedOrigins []string, verifier port.TokenVerifier, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(l))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(l))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks and ops
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(verifier))

	tariffs := protected.Group("/tariffs")
	tariffs.POST("/compare", h.Tariff.Compare)
	tariffs.POST("/compare/export", h.Tariff.Export)
	tariffs.POST("/savings", h.Tariff.Savings)
	tariffs.GET("/rates", h.Tariff.Rates)

	hscodes := protected.Group("/hscodes")
	hscodes.GET("/normalize", h.Tariff.Normalize)

	// Admin routes - cache lifecycle
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/cache/stats", h.Admin.CacheStats)
	admin.POST("/cache/invalidate", h.Admin.Invalidate)
	admin.POST("/treaty/reload", h.Admin.ReloadTreaty)

	return r
}
