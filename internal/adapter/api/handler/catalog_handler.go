package handler

import (
	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/response"
	"nexusmarket/pkg/utils"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewCatalogHandler(catalogUseCase *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
	}
}

type customFieldRequest struct {
	ID         string   `json:"id" validate:"required"`
	Label      string   `json:"label" validate:"required"`
	Type       string   `json:"type" validate:"required,oneof=text number select"`
	Options    []string `json:"options,omitempty"`
	Required   bool     `json:"required"`
	FilterType string   `json:"filter_type" validate:"omitempty,oneof=none select range"`
}

type gameVariantRequest struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Image    string `json:"image" validate:"omitempty,url"`
	Subtitle string `json:"subtitle"`
}

type categoryConfigRequest struct {
	ListingFields      []customFieldRequest `json:"listing_fields"`
	BuyerFields        []customFieldRequest `json:"buyer_fields"`
	DeliveryOptions    []string             `json:"delivery_options"`
	PredefinedVariants []gameVariantRequest `json:"predefined_variants"`
}

type seoRequest struct {
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	Keywords        []string `json:"keywords"`
}

type saveGameRequest struct {
	Name            string                           `json:"name" validate:"required"`
	Image           string                           `json:"image" validate:"omitempty,url"`
	DetailImage     string                           `json:"detail_image" validate:"omitempty,url"`
	CategoryIDs     []string                         `json:"category_ids"`
	PlatformGroupID string                           `json:"platform_group_id"`
	SEO             *seoRequest                      `json:"seo"`
	CategoryConfigs map[string]categoryConfigRequest `json:"category_configs"`
	Status          string                           `json:"status" validate:"required,oneof=active inactive"`
}

func fieldsFromRequest(fields []customFieldRequest) []entity.CustomField {
	if len(fields) == 0 {
		return nil
	}
	out := make([]entity.CustomField, len(fields))
	for i, f := range fields {
		out[i] = entity.CustomField{
			ID:         f.ID,
			Label:      f.Label,
			Type:       entity.FieldType(f.Type),
			Options:    f.Options,
			Required:   f.Required,
			FilterType: entity.FilterType(f.FilterType),
		}
	}
	return out
}

func configFromRequest(req categoryConfigRequest) entity.CategoryConfig {
	cfg := entity.CategoryConfig{
		ListingFields:   fieldsFromRequest(req.ListingFields),
		BuyerFields:     fieldsFromRequest(req.BuyerFields),
		DeliveryOptions: req.DeliveryOptions,
	}
	for _, v := range req.PredefinedVariants {
		cfg.PredefinedVariants = append(cfg.PredefinedVariants, entity.GameVariant{
			ID:       v.ID,
			Name:     v.Name,
			Image:    v.Image,
			Subtitle: v.Subtitle,
		})
	}
	return cfg
}

func (r saveGameRequest) toInput() usecase.SaveGameInput {
	input := usecase.SaveGameInput{
		Name:            r.Name,
		Image:           r.Image,
		DetailImage:     r.DetailImage,
		CategoryIDs:     r.CategoryIDs,
		PlatformGroupID: r.PlatformGroupID,
		Status:          r.Status,
	}
	if r.SEO != nil {
		input.SEO = &entity.SEOSettings{
			MetaTitle:       r.SEO.MetaTitle,
			MetaDescription: r.SEO.MetaDescription,
			Keywords:        r.SEO.Keywords,
		}
	}
	if len(r.CategoryConfigs) > 0 {
		input.CategoryConfigs = make(map[string]entity.CategoryConfig, len(r.CategoryConfigs))
		for categoryID, cfg := range r.CategoryConfigs {
			input.CategoryConfigs[categoryID] = configFromRequest(cfg)
		}
	}
	return input
}

func (h *CatalogHandler) CreateGame(c echo.Context) error {
	var req saveGameRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	game, err := h.catalogUseCase.CreateGame(c.Request().Context(), req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, game)
}

func (h *CatalogHandler) UpdateGame(c echo.Context) error {
	id := c.Param("id")

	var req saveGameRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	game, err := h.catalogUseCase.UpdateGame(c.Request().Context(), id, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, game)
}

func (h *CatalogHandler) GetGame(c echo.Context) error {
	id := c.Param("id")

	game, err := h.catalogUseCase.GetGame(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, game)
}

func (h *CatalogHandler) GetGameBySlug(c echo.Context) error {
	slug := c.Param("slug")

	game, err := h.catalogUseCase.GetGameBySlug(c.Request().Context(), slug)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, game)
}

func (h *CatalogHandler) ListGames(c echo.Context) error {
	status := c.QueryParam("status")
	pagination := utils.GetPaginationParams(c)

	games, total, err := h.catalogUseCase.ListGames(c.Request().Context(), status, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, games, total, pagination.Page, pagination.PageSize)
}

func (h *CatalogHandler) DeleteGame(c echo.Context) error {
	id := c.Param("id")

	if err := h.catalogUseCase.DeleteGame(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message": "Game deleted successfully",
	})
}

func (h *CatalogHandler) GetConfig(c echo.Context) error {
	gameID := c.Param("id")
	categoryID := c.Param("categoryId")

	cfg, err := h.catalogUseCase.Config(c.Request().Context(), gameID, categoryID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cfg)
}

func (h *CatalogHandler) SetConfig(c echo.Context) error {
	gameID := c.Param("id")
	categoryID := c.Param("categoryId")

	var req categoryConfigRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	game, err := h.catalogUseCase.SetConfig(c.Request().Context(), gameID, categoryID, configFromRequest(req))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, game)
}

func (h *CatalogHandler) ListPlatforms(c echo.Context) error {
	platforms, err := h.catalogUseCase.ListPlatforms(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, platforms)
}

func (h *CatalogHandler) ListPlatformGroups(c echo.Context) error {
	groups, err := h.catalogUseCase.ListPlatformGroups(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, groups)
}

func (h *CatalogHandler) GamePlatforms(c echo.Context) error {
	id := c.Param("id")

	platforms, err := h.catalogUseCase.GamePlatforms(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, platforms)
}
