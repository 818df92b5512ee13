package router

import (
	"nexusmarket/internal/adapter/api/handler"
	"nexusmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := e.Group("/v1/orders")
	orders.Use(authMiddleware.Authenticate)

	orders.POST("", orderHandler.Checkout, rateLimit.Limit("checkout"))
	orders.GET("/purchases", orderHandler.MyPurchases)
	orders.GET("/sales", orderHandler.MySales)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus)
	orders.GET("/:id/messages", orderHandler.Messages)
	orders.POST("/:id/messages", orderHandler.PostMessage, rateLimit.Limit("send_message"))
}
