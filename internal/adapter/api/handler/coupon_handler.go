package handler

import (
	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/response"
	"nexusmarket/pkg/utils"

	"github.com/labstack/echo/v4"
)

type CouponHandler struct {
	couponUseCase *usecase.CouponUseCase
}

func NewCouponHandler(couponUseCase *usecase.CouponUseCase) *CouponHandler {
	return &CouponHandler{
		couponUseCase: couponUseCase,
	}
}

type saveCouponRequest struct {
	Code     string  `json:"code" validate:"required,min=3,max=32"`
	Discount float64 `json:"discount" validate:"required,gt=0"`
	Type     string  `json:"type" validate:"required,oneof=Percentage Fixed"`
	MaxUses  int     `json:"max_uses" validate:"gte=0"`
	Status   string  `json:"status" validate:"omitempty,oneof=Active Expired"`
}

func (h *CouponHandler) CreateCoupon(c echo.Context) error {
	var req saveCouponRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	coupon, err := h.couponUseCase.CreateCoupon(c.Request().Context(), usecase.SaveCouponInput{
		Code:     req.Code,
		Discount: req.Discount,
		Type:     req.Type,
		MaxUses:  req.MaxUses,
		Status:   req.Status,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, coupon)
}

func (h *CouponHandler) ListCoupons(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	coupons, total, err := h.couponUseCase.ListCoupons(c.Request().Context(), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, coupons, total, pagination.Page, pagination.PageSize)
}

func (h *CouponHandler) ValidateCoupon(c echo.Context) error {
	code := c.Param("code")

	coupon, err := h.couponUseCase.Validate(c.Request().Context(), code)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, coupon)
}

type couponStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Active Expired"`
}

func (h *CouponHandler) UpdateStatus(c echo.Context) error {
	code := c.Param("code")

	var req couponStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	coupon, err := h.couponUseCase.UpdateStatus(c.Request().Context(), code, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, coupon)
}

func (h *CouponHandler) DeleteCoupon(c echo.Context) error {
	id := c.Param("id")

	if err := h.couponUseCase.DeleteCoupon(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"message": "Coupon deleted successfully",
	})
}
