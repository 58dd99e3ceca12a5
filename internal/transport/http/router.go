package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/ratelimit"
	"github.com/taskhive/taskhive/internal/transport/http/handler"
	"github.com/taskhive/taskhive/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

// Limiters carries one store per route group. The auth group policy is
// stricter than the task group policy.
type Limiters struct {
	Auth  ratelimit.Store
	Tasks ratelimit.Store
}

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, taskHandler *handler.TaskHandler, limiters Limiters, hmacKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(hmacKey)
	authLimiter := middleware.RateLimit("auth", limiters.Auth, logger)
	taskLimiter := middleware.RateLimit("tasks", limiters.Tasks, logger)

	auth := r.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authLimiter, authMW, authHandler.Me)

	// Protected task routes
	tasks := r.Group("/tasks", taskLimiter, authMW)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.GetByID)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	return r
}
