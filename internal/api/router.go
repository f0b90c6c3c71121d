package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/staylens/core/internal/api/handlers"
	"github.com/staylens/core/internal/api/middleware"
	"github.com/staylens/core/internal/config"
	"github.com/staylens/core/internal/keywords"
	"github.com/staylens/core/internal/pipeline"
	"github.com/staylens/core/internal/services"
	"gorm.io/gorm"
)

// SetupRouter initializes and returns the Gin router with all routes configured
func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, *middleware.APIKeyManager, error) {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	apiKeyManager, err := middleware.NewAPIKeyManager(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}

	// Initialize services
	logService := services.NewLogServiceWithLevel(db, cfg.LogLevel)
	ranker := keywords.NewLocal(cfg.KeywordLang, cfg.KeywordNgram)
	processor := pipeline.NewProcessor(ranker, cfg.KeywordTopK)
	reviewService := services.NewReviewService(db, processor, logService)

	// Initialize handlers
	reviewHandler := handlers.NewReviewHandler(reviewService, logService, cfg.GetUploadDir())

	// Request logging into the operation log
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logService.LogAPIRequest(c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Milliseconds(), c.ClientIP())
	})

	// Health check endpoint (no key required)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api")
	{
		if cfg.RequireKey {
			api.Use(middleware.APIKeyMiddleware(apiKeyManager))
		}

		api.GET("/data", reviewHandler.Data)
		api.POST("/upload", reviewHandler.Upload)
		api.GET("/archives", reviewHandler.Archives)
		api.GET("/logs", reviewHandler.Logs)
	}

	return router, apiKeyManager, nil
}
