package handler

import (
	"strconv"
	"strings"

	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/response"

	"github.com/labstack/echo/v4"
)

type BrowseHandler struct {
	browseUseCase *usecase.BrowseUseCase
}

func NewBrowseHandler(browseUseCase *usecase.BrowseUseCase) *BrowseHandler {
	return &BrowseHandler{
		browseUseCase: browseUseCase,
	}
}

// parseFilters reads the marketplace filter controls from the query string.
// Custom-field predicates use f.<id> for select values and f.<id>.min /
// f.<id>.max for range bounds.
func parseFilters(c echo.Context) usecase.BrowseFilters {
	filters := usecase.BrowseFilters{}

	if platforms := c.QueryParam("platforms"); platforms != "" {
		filters.PlatformIDs = strings.Split(platforms, ",")
	}
	filters.OnlineOnly, _ = strconv.ParseBool(c.QueryParam("online"))
	filters.InstantOnly, _ = strconv.ParseBool(c.QueryParam("instant"))

	if v := c.QueryParam("min_price"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinPrice = &n
		}
	}
	if v := c.QueryParam("max_price"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MaxPrice = &n
		}
	}

	for key, values := range c.QueryParams() {
		if !strings.HasPrefix(key, "f.") || len(values) == 0 || values[0] == "" {
			continue
		}
		if filters.Fields == nil {
			filters.Fields = make(map[string]usecase.FieldFilter)
		}

		name := strings.TrimPrefix(key, "f.")
		switch {
		case strings.HasSuffix(name, ".min"):
			fieldID := strings.TrimSuffix(name, ".min")
			if n, err := strconv.ParseFloat(values[0], 64); err == nil {
				ff := filters.Fields[fieldID]
				ff.Min = &n
				filters.Fields[fieldID] = ff
			}
		case strings.HasSuffix(name, ".max"):
			fieldID := strings.TrimSuffix(name, ".max")
			if n, err := strconv.ParseFloat(values[0], 64); err == nil {
				ff := filters.Fields[fieldID]
				ff.Max = &n
				filters.Fields[fieldID] = ff
			}
		default:
			ff := filters.Fields[name]
			ff.Value = values[0]
			filters.Fields[name] = ff
		}
	}

	return filters
}

func (h *BrowseHandler) Browse(c echo.Context) error {
	gameID := c.Param("gameId")
	categoryID := c.Param("categoryId")

	listings, err := h.browseUseCase.Browse(c.Request().Context(), gameID, categoryID, parseFilters(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

func (h *BrowseHandler) BrowseGrouped(c echo.Context) error {
	gameID := c.Param("gameId")
	categoryID := c.Param("categoryId")

	groups, err := h.browseUseCase.BrowseGrouped(c.Request().Context(), gameID, categoryID, parseFilters(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, groups)
}

func (h *BrowseHandler) FilterSchema(c echo.Context) error {
	gameID := c.Param("gameId")
	categoryID := c.Param("categoryId")

	fields, err := h.browseUseCase.FilterSchema(c.Request().Context(), gameID, categoryID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, fields)
}
