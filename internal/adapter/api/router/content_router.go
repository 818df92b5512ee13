package router

import (
	"nexusmarket/internal/adapter/api/handler"
	"nexusmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupContentRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	contentHandler := handler.GetContentHandler()

	e.GET("/v1/banners", contentHandler.ActiveBanners)

	admin := e.Group("/v1/admin/content")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/banners", contentHandler.ListBanners)
	admin.POST("/banners", contentHandler.CreateBanner)
	admin.PUT("/banners/:id", contentHandler.UpdateBanner)
	admin.DELETE("/banners/:id", contentHandler.DeleteBanner)

	admin.GET("/media", contentHandler.ListMedia)
	admin.POST("/media", contentHandler.UploadMedia)
	admin.DELETE("/media/:id", contentHandler.DeleteMedia)
}
