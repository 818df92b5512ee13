package router

import (
	"nexusmarket/internal/adapter/api/handler"
	"nexusmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo, rateLimit *middleware.RateLimitMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.Use(rateLimit.Limit("auth"))

	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
}
