package router

import (
	"nexusmarket/internal/adapter/api/handler"
	"nexusmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	listingHandler := handler.GetListingHandler()

	e.GET("/v1/listings/:id", listingHandler.GetListing)

	seller := e.Group("/v1/listings")
	seller.Use(authMiddleware.Authenticate)

	seller.POST("", listingHandler.CreateListing, rateLimit.Limit("create_listing"))
	seller.PUT("/:id", listingHandler.UpdateListing)
	seller.DELETE("/:id", listingHandler.DeleteListing)
	seller.GET("/mine", listingHandler.MyListings)
}
