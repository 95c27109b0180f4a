package router

import (
	"github.com/gin-gonic/gin"

	"invex/internal/config"
	"invex/internal/handler"
	"invex/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg config.ServerConfig,
	extractH *handler.ExtractHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	if cfg.MaxUploadMB > 0 {
		r.MaxMultipartMemory = cfg.MaxUploadMB << 20
	}

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Extraction routes; open when no JWT secret is configured
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	v1.POST("/invoices/extract", extractH.Invoice)
	v1.POST("/documents/pages", extractH.Pages)

	return r
}
