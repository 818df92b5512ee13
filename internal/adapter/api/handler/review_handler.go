package handler

import (
	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/response"
	"nexusmarket/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type createReviewRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	Rating  string `json:"rating" validate:"required,oneof=Positive Negative"`
	Text    string `json:"text" validate:"max=2000"`
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.CreateReview(c.Request().Context(), uid, usecase.CreateReviewInput{
		OrderID: req.OrderID,
		Rating:  req.Rating,
		Text:    req.Text,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ReviewHandler) ListSellerReviews(c echo.Context) error {
	sellerID := c.Param("sellerId")
	pagination := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewUseCase.ListSellerReviews(c.Request().Context(), sellerID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reviews, total, pagination.Page, pagination.PageSize)
}

func (h *ReviewHandler) FlagReview(c echo.Context) error {
	id := c.Param("id")

	review, err := h.reviewUseCase.FlagReview(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review)
}

func (h *ReviewHandler) ApproveReview(c echo.Context) error {
	id := c.Param("id")

	review, err := h.reviewUseCase.ApproveReview(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review)
}
