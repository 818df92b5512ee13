package handler

import (
	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/response"
	"nexusmarket/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type saveListingRequest struct {
	GameID      string  `json:"game_id" validate:"required"`
	CategoryID  string  `json:"category_id" validate:"required"`
	Title       string  `json:"title"`
	Description string  `json:"description" validate:"max=5000"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Unit        string  `json:"unit"`
	Stock       int     `json:"stock" validate:"gte=0"`
	MinQty      int     `json:"min_qty" validate:"gte=0"`

	DeliveryType string `json:"delivery_type" validate:"required,oneof=Instant Manual Auto-Delivery"`
	DeliveryTime string `json:"delivery_time"`

	PlatformID string   `json:"platform_id"`
	Region     string   `json:"region"`
	Tags       []string `json:"tags"`

	CustomValues map[string]interface{} `json:"custom_values"`
	VariantID    string                 `json:"variant_id"`
}

func (r saveListingRequest) toInput() usecase.SaveListingInput {
	return usecase.SaveListingInput{
		GameID:       r.GameID,
		CategoryID:   r.CategoryID,
		Title:        r.Title,
		Description:  r.Description,
		Image:        r.Image,
		Price:        r.Price,
		Unit:         r.Unit,
		Stock:        r.Stock,
		MinQty:       r.MinQty,
		DeliveryType: r.DeliveryType,
		DeliveryTime: r.DeliveryTime,
		PlatformID:   r.PlatformID,
		Region:       r.Region,
		Tags:         r.Tags,
		CustomValues: r.CustomValues,
		VariantID:    r.VariantID,
	}
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req saveListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), uid, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	id := c.Param("id")

	listing, err := h.listingUseCase.GetListing(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")

	var req saveListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.UpdateListing(c.Request().Context(), uid, id, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")

	if err := h.listingUseCase.DeleteListing(c.Request().Context(), uid, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message": "Listing deleted successfully",
	})
}

func (h *ListingHandler) MyListings(c echo.Context) error {
	uid := c.Get("uid").(string)
	status := c.QueryParam("status")
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListSellerListings(c.Request().Context(), uid, status, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}
