package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/mtodo/internal/middleware"
)

type RouterDeps struct {
	Auth         *AuthHandler
	Todos        *TodoHandler
	Health       *HealthHandler
	Tokens       middleware.TokenVerifier
	SigninWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/healthz", deps.Health.Check)

	auth := api.Group("/auth")
	auth.POST("/signup", deps.Auth.Signup)
	auth.POST("/signin", middleware.RateLimit(deps.SigninWindow), deps.Auth.Signin)

	todos := auth.Group("/todos")
	todos.Use(middleware.JWTAuth(deps.Tokens))
	todos.POST("", deps.Todos.Create)
	todos.GET("", deps.Todos.List)
	todos.DELETE("", deps.Todos.Delete)
}
