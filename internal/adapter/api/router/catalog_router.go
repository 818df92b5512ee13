package router

import (
	"nexusmarket/internal/adapter/api/handler"
	"nexusmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupCatalogRouter wires games, category configs, categories and platforms.
func SetupCatalogRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	catalogHandler := handler.GetCatalogHandler()
	categoryHandler := handler.GetCategoryHandler()

	// Public catalog reads
	e.GET("/v1/games", catalogHandler.ListGames)
	e.GET("/v1/games/:id", catalogHandler.GetGame)
	e.GET("/v1/games/slug/:slug", catalogHandler.GetGameBySlug)
	e.GET("/v1/games/:id/platforms", catalogHandler.GamePlatforms)
	e.GET("/v1/games/:id/configs/:categoryId", catalogHandler.GetConfig)
	e.GET("/v1/categories", categoryHandler.ListCategories)
	e.GET("/v1/categories/:id", categoryHandler.GetCategory)
	e.GET("/v1/platforms", catalogHandler.ListPlatforms)
	e.GET("/v1/platform-groups", catalogHandler.ListPlatformGroups)

	adminGames := e.Group("/v1/admin/games")
	adminGames.Use(authMiddleware.Authenticate)
	adminGames.Use(adminMiddleware.AdminOnly)

	adminGames.POST("", catalogHandler.CreateGame)
	adminGames.PUT("/:id", catalogHandler.UpdateGame)
	adminGames.DELETE("/:id", catalogHandler.DeleteGame)
	adminGames.PUT("/:id/configs/:categoryId", catalogHandler.SetConfig)

	adminCategories := e.Group("/v1/admin/categories")
	adminCategories.Use(authMiddleware.Authenticate)
	adminCategories.Use(adminMiddleware.AdminOnly)

	adminCategories.POST("", categoryHandler.CreateCategory)
	adminCategories.PUT("/:id", categoryHandler.UpdateCategory)
	adminCategories.DELETE("/:id", categoryHandler.DeleteCategory)
}
