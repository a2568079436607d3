package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ndiayefarms/broodplan/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(planningHandler *handlers.PlanningHandler, tasksHandler *handlers.TasksHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.POST("/plans/calculate", planningHandler.Calculate)
		api.POST("/plans", planningHandler.Create)
		api.GET("/plans", planningHandler.List)
		api.GET("/plans/:id", planningHandler.Get)
		api.DELETE("/plans/:id", planningHandler.Delete)

		api.POST("/plans/:id/tasks/generate", tasksHandler.Generate)
		api.GET("/plans/:id/tasks", tasksHandler.ByDay)
		api.GET("/plans/:id/tasks/today", tasksHandler.Today)
		api.GET("/plans/:id/tasks/upcoming", tasksHandler.Upcoming)
		api.GET("/plans/:id/tasks/stats", tasksHandler.Stats)

		api.POST("/tasks/:id/complete", tasksHandler.Complete)
		api.PUT("/tasks/:id/notes", tasksHandler.Annotate)
		api.PUT("/tasks/:id/photo", tasksHandler.AttachPhoto)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
