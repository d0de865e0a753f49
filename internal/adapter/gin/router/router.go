package router

import (
	"net/http"

	"exercise-tracker-service/internal/adapter/gin/handler"
	"exercise-tracker-service/internal/adapter/gin/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	trackerHandler *handler.TrackerHandler,
	rateLimiter *middleware.RateLimiter,
	staticDir string,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "exercise-tracker-service",
		})
	})

	// Landing page and assets
	if staticDir != "" {
		router.StaticFile("/", staticDir+"/index.html")
		router.Static("/public", staticDir)
	}

	// API routes
	api := router.Group("/api")
	if rateLimiter != nil {
		api.Use(rateLimiter.Middleware())
	}
	{
		users := api.Group("/users")
		{
			users.POST("", trackerHandler.CreateUser)
			users.GET("", trackerHandler.ListUsers)
			users.POST("/:id/exercises", trackerHandler.AddExercise)
			users.GET("/:id/logs", trackerHandler.GetLogs)
		}
	}

	return router
}
