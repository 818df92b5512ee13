package handler

import (
	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/response"
	"nexusmarket/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ContentHandler struct {
	contentUseCase *usecase.ContentUseCase
}

func NewContentHandler(contentUseCase *usecase.ContentUseCase) *ContentHandler {
	return &ContentHandler{
		contentUseCase: contentUseCase,
	}
}

type saveBannerRequest struct {
	Title    string `json:"title" validate:"required"`
	ImageURL string `json:"image_url" validate:"required,url"`
	Link     string `json:"link" validate:"omitempty,url"`
	Active   bool   `json:"active"`
	Position int    `json:"position" validate:"gte=0"`
}

func (r saveBannerRequest) toInput() usecase.SaveBannerInput {
	return usecase.SaveBannerInput{
		Title:    r.Title,
		ImageURL: r.ImageURL,
		Link:     r.Link,
		Active:   r.Active,
		Position: r.Position,
	}
}

func (h *ContentHandler) CreateBanner(c echo.Context) error {
	var req saveBannerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	banner, err := h.contentUseCase.CreateBanner(c.Request().Context(), req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, banner)
}

func (h *ContentHandler) UpdateBanner(c echo.Context) error {
	id := c.Param("id")

	var req saveBannerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	banner, err := h.contentUseCase.UpdateBanner(c.Request().Context(), id, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, banner)
}

func (h *ContentHandler) ListBanners(c echo.Context) error {
	banners, err := h.contentUseCase.ListBanners(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, banners)
}

func (h *ContentHandler) ActiveBanners(c echo.Context) error {
	banners, err := h.contentUseCase.ActiveBanners(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, banners)
}

func (h *ContentHandler) DeleteBanner(c echo.Context) error {
	id := c.Param("id")

	if err := h.contentUseCase.DeleteBanner(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message": "Banner deleted successfully",
	})
}

func (h *ContentHandler) UploadMedia(c echo.Context) error {
	uid := c.Get("uid").(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, err)
	}
	defer src.Close()

	item, err := h.contentUseCase.UploadMedia(c.Request().Context(), uid, usecase.UploadMediaInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        src,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

func (h *ContentHandler) ListMedia(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	items, total, err := h.contentUseCase.ListMedia(c.Request().Context(), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *ContentHandler) DeleteMedia(c echo.Context) error {
	id := c.Param("id")

	if err := h.contentUseCase.DeleteMedia(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message": "Media item deleted successfully",
	})
}
