package router

import (
	"nexusmarket/internal/adapter/api/handler"
	"nexusmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupCouponRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	couponHandler := handler.GetCouponHandler()

	// Buyers can pre-validate a code before checkout.
	validate := e.Group("/v1/coupons")
	validate.Use(authMiddleware.Authenticate)
	validate.GET("/:code/validate", couponHandler.ValidateCoupon)

	admin := e.Group("/v1/admin/coupons")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("", couponHandler.ListCoupons)
	admin.POST("", couponHandler.CreateCoupon)
	admin.PATCH("/:code/status", couponHandler.UpdateStatus)
	admin.DELETE("/:id", couponHandler.DeleteCoupon)
}
