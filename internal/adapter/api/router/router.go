package router

import (
	"nexusmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	SetupAuthRouter(e, rateLimit)
	SetupUserRouter(e, authMiddleware, adminMiddleware)
	SetupCatalogRouter(e, authMiddleware, adminMiddleware)
	SetupListingRouter(e, authMiddleware, rateLimit)
	SetupBrowseRouter(e)
	SetupOrderRouter(e, authMiddleware, rateLimit)
	SetupReviewRouter(e, authMiddleware, adminMiddleware)
	SetupContentRouter(e, authMiddleware, adminMiddleware)
	SetupCouponRouter(e, authMiddleware, adminMiddleware)
	SetupHealthRouter(e)
}
