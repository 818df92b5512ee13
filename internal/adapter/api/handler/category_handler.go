package handler

import (
	"strconv"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/response"
	"nexusmarket/pkg/utils"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewCategoryHandler(catalogUseCase *usecase.CatalogUseCase) *CategoryHandler {
	return &CategoryHandler{
		catalogUseCase: catalogUseCase,
	}
}

type saveCategoryRequest struct {
	Name     string     `json:"name" validate:"required"`
	Icon     string     `json:"icon"`
	Layout   string     `json:"layout" validate:"required,oneof=LIST_GRID GROUPED_GIFT_CARD"`
	SEO      seoRequest `json:"seo"`
	IsActive bool       `json:"is_active"`
}

func (r saveCategoryRequest) toInput() usecase.SaveCategoryInput {
	return usecase.SaveCategoryInput{
		Name:   r.Name,
		Icon:   r.Icon,
		Layout: entity.CategoryLayout(r.Layout),
		SEO: entity.SEOSettings{
			MetaTitle:       r.SEO.MetaTitle,
			MetaDescription: r.SEO.MetaDescription,
			Keywords:        r.SEO.Keywords,
		},
		IsActive: r.IsActive,
	}
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req saveCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.catalogUseCase.CreateCategory(c.Request().Context(), req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, category)
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id := c.Param("id")

	var req saveCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.catalogUseCase.UpdateCategory(c.Request().Context(), id, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, category)
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id := c.Param("id")

	category, err := h.catalogUseCase.GetCategory(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, category)
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	activeOnly, _ := strconv.ParseBool(c.QueryParam("active"))
	pagination := utils.GetPaginationParams(c)

	categories, total, err := h.catalogUseCase.ListCategories(c.Request().Context(), activeOnly, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, categories, total, pagination.Page, pagination.PageSize)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id := c.Param("id")

	if err := h.catalogUseCase.DeleteCategory(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message": "Category deleted successfully",
	})
}
