package router

import (
	"nexusmarket/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupBrowseRouter(e *echo.Echo) {
	browseHandler := handler.GetBrowseHandler()

	e.GET("/v1/browse/:gameId/:categoryId", browseHandler.Browse)
	e.GET("/v1/browse/:gameId/:categoryId/grouped", browseHandler.BrowseGrouped)
	e.GET("/v1/browse/:gameId/:categoryId/filters", browseHandler.FilterSchema)
}
