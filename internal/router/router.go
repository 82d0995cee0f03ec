package router

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"flowcase/internal/config"
	"flowcase/internal/handler"
	"flowcase/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	extractionH *handler.ExtractionHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Single-page UI
	r.StaticFile("/", filepath.Join(cfg.Server.StaticDir, "index.html"))

	v1 := r.Group("/api/v1")

	extractions := v1.Group("/extractions")
	extractions.POST("", extractionH.Extract)
	extractions.GET("", extractionH.List)
	extractions.GET("/:id", extractionH.GetByID)
	extractions.GET("/:id/export/csv", extractionH.ExportCSV)
	extractions.GET("/:id/export/xlsx", extractionH.ExportXLSX)
	extractions.GET("/:id/document", extractionH.DocumentURL)

	return r
}
