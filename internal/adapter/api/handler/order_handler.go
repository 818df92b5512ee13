package handler

import (
	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/usecase"
	"nexusmarket/pkg/response"
	"nexusmarket/pkg/utils"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

type checkoutRequest struct {
	ListingID        string            `json:"listing_id" validate:"required"`
	Quantity         int               `json:"quantity" validate:"gte=0"`
	CouponCode       string            `json:"coupon_code"`
	BuyerInputValues map[string]string `json:"buyer_input_values"`
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.Checkout(c.Request().Context(), uid, usecase.CheckoutInput{
		ListingID:        req.ListingID,
		Quantity:         req.Quantity,
		CouponCode:       req.CouponCode,
		BuyerInputValues: req.BuyerInputValues,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")

	order, err := h.orderUseCase.GetOrder(c.Request().Context(), uid, id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) MyPurchases(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	orders, total, err := h.orderUseCase.ListBuyerOrders(c.Request().Context(), uid, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}

func (h *OrderHandler) MySales(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	orders, total, err := h.orderUseCase.ListSellerOrders(c.Request().Context(), uid, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}

type updateOrderStatusRequest struct {
	Status        string `json:"status" validate:"required"`
	DisputeReason string `json:"dispute_reason"`
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.UpdateStatus(c.Request().Context(), uid, id, usecase.UpdateOrderStatusInput{
		Status:        entity.OrderStatus(req.Status),
		DisputeReason: req.DisputeReason,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

type postMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

func (h *OrderHandler) PostMessage(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")

	var req postMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	msg, err := h.orderUseCase.PostMessage(c.Request().Context(), uid, id, req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, msg)
}

func (h *OrderHandler) Messages(c echo.Context) error {
	uid := c.Get("uid").(string)
	id := c.Param("id")

	messages, err := h.orderUseCase.Messages(c.Request().Context(), uid, id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}
