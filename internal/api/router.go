package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/isuraem/shopify-best-sellers-app/internal/api/handlers"
	"github.com/isuraem/shopify-best-sellers-app/internal/api/middleware"
	"github.com/isuraem/shopify-best-sellers-app/internal/config"
	"github.com/isuraem/shopify-best-sellers-app/internal/planner"
	"github.com/isuraem/shopify-best-sellers-app/internal/service"
)

// Services bundles everything the routes need.
type Services struct {
	Scans       *service.ScanService
	Actions     *service.ActionService
	Bestsellers *service.BestsellerService
	Tagging     *service.TaggingService
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svcs *Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Merchandising Audit API",
			"endpoints": []string{
				"GET /health",
				"POST /v1/scans",
				"POST /v1/scans/csv",
				"GET /v1/scans/history",
				"POST /v1/actions",
				"POST /v1/actions/:token/confirm",
				"GET /v1/actions/:token",
				"GET /v1/bestsellers",
				"POST /v1/products/tags",
				"POST /v1/collections/add",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Pending bulk operations live here between stage and confirm.
	registry := planner.NewRegistry()

	// API v1 routes (admin key required when configured)
	v1 := router.Group("/v1")
	v1.Use(middleware.AdminAuthMiddleware(cfg.API, logger))
	{
		v1.POST("/scans", handlers.HandleScan(svcs.Scans, logger))
		v1.POST("/scans/csv", handlers.HandleCSVCompare(svcs.Scans, logger))
		v1.GET("/scans/history", handlers.HandleScanHistory(svcs.Scans, logger))

		v1.POST("/actions", handlers.HandleStageAction(registry, logger))
		v1.POST("/actions/:token/confirm", handlers.HandleConfirmAction(registry, svcs.Actions, logger))
		v1.GET("/actions/:token", handlers.HandleGetAction(registry))

		v1.GET("/bestsellers", handlers.HandleBestsellers(svcs.Bestsellers, logger))
		v1.POST("/products/tags", handlers.HandleAddTags(svcs.Tagging, logger))
		v1.POST("/collections/add", handlers.HandleAddToCollection(svcs.Tagging, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
