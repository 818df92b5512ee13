package usecase

import (
	"context"
	"fmt"
	"time"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
	"nexusmarket/pkg/logger"
)

// Notifier pushes realtime events to connected users. The websocket hub
// satisfies it; tests use a no-op.
type Notifier interface {
	NotifyUser(userID string, event string, payload interface{})
}

type NoopNotifier struct{}

func (NoopNotifier) NotifyUser(string, string, interface{}) {}

// OrderUseCase runs checkout and the order lifecycle.
type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	listingRepo repository.ListingRepository
	gameRepo    repository.GameRepository
	userRepo    repository.UserRepository
	couponRepo  repository.CouponRepository
	notifier    Notifier
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	listingRepo repository.ListingRepository,
	gameRepo repository.GameRepository,
	userRepo repository.UserRepository,
	couponRepo repository.CouponRepository,
	notifier Notifier,
) *OrderUseCase {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &OrderUseCase{
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		gameRepo:    gameRepo,
		userRepo:    userRepo,
		couponRepo:  couponRepo,
		notifier:    notifier,
	}
}

type CheckoutInput struct {
	ListingID        string
	Quantity         int
	CouponCode       string
	BuyerInputValues map[string]string
}

// Checkout validates the purchase against the listing and the pair config's
// buyer fields, applies an optional coupon, and creates the order. The stock
// decrement happens inside the repository transaction, so two buyers cannot
// both take the last unit.
func (uc *OrderUseCase) Checkout(ctx context.Context, buyerID string, input CheckoutInput) (*entity.Order, error) {
	buyer, err := uc.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if buyer.Status != entity.UserStatusActive {
		return nil, errors.Forbidden("Account is not allowed to purchase", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != entity.ListingStatusActive {
		return nil, errors.Conflict("Listing is not available")
	}
	if listing.SellerID == buyerID {
		return nil, errors.BadRequest("You cannot purchase your own listing", nil)
	}

	qty := input.Quantity
	if qty <= 0 {
		qty = listing.MinQty
	}
	if qty < listing.MinQty {
		return nil, errors.BadRequest(fmt.Sprintf("Minimum purchase quantity is %d", listing.MinQty), nil)
	}
	if qty > listing.Stock {
		return nil, errors.Conflict("Insufficient stock")
	}

	buyerValues, err := uc.validateBuyerFields(ctx, listing, input.BuyerInputValues)
	if err != nil {
		return nil, err
	}

	total := listing.Price * float64(qty)
	couponCode := ""
	if input.CouponCode != "" {
		coupon, err := uc.couponRepo.Redeem(ctx, input.CouponCode)
		if err != nil {
			return nil, err
		}
		total = coupon.Apply(total)
		couponCode = coupon.Code
	}

	order := &entity.Order{
		ListingID:        listing.ID,
		Listing:          *listing,
		SellerID:         listing.SellerID,
		BuyerID:          buyerID,
		Quantity:         qty,
		TotalPrice:       total,
		CouponCode:       couponCode,
		Status:           entity.OrderPending,
		BuyerInputValues: buyerValues,
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		// The transactional stock re-check can still reject the order;
		// give the consumed coupon use back so it is not lost.
		if couponCode != "" {
			if relErr := uc.couponRepo.Release(ctx, couponCode); relErr != nil {
				logger.Warn("Failed to release coupon %s after failed checkout: %v", couponCode, relErr)
			}
		}
		return nil, err
	}

	msg := &entity.ChatMessage{
		Text:     fmt.Sprintf("Order created: %dx %s", qty, listing.Title),
		IsSystem: true,
	}
	if err := uc.orderRepo.AppendMessage(ctx, order.ID, msg); err != nil {
		logger.Warn("Failed to append system message to order %s: %v", order.ID, err)
	}

	uc.notifier.NotifyUser(order.SellerID, "order_created", order)
	return order, nil
}

// validateBuyerFields checks the buyer's answers against the pair config's
// buyer fields. Required fields must be filled; unknown keys are dropped.
func (uc *OrderUseCase) validateBuyerFields(ctx context.Context, listing *entity.Listing, raw map[string]string) (map[string]string, error) {
	game, err := uc.gameRepo.GetByID(ctx, listing.GameID)
	if err != nil {
		// An orphaned listing can still be bought; there is no config to
		// enforce, so buyer fields pass through.
		logger.Warn("Listing %s references missing game %s", listing.ID, listing.GameID)
		return raw, nil
	}

	cfg := game.Config(listing.CategoryID)
	if len(cfg.BuyerFields) == 0 {
		return nil, nil
	}

	out := make(map[string]string, len(cfg.BuyerFields))
	for _, field := range cfg.BuyerFields {
		value := raw[field.ID]
		if value == "" {
			if field.Required {
				return nil, errors.BadRequest(fmt.Sprintf("Field %q is required", field.Label), nil)
			}
			continue
		}
		out[field.ID] = value
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !uc.isParticipant(ctx, userID, order) {
		return nil, errors.Forbidden("You do not have access to this order", nil)
	}
	return order, nil
}

func (uc *OrderUseCase) ListBuyerOrders(ctx context.Context, buyerID string, page, limit int) ([]*entity.Order, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return uc.orderRepo.ListByBuyerID(ctx, buyerID, limit, offset)
}

func (uc *OrderUseCase) ListSellerOrders(ctx context.Context, sellerID string, page, limit int) ([]*entity.Order, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return uc.orderRepo.ListBySellerID(ctx, sellerID, limit, offset)
}

// allowedTransitions is keyed by current status; an order may only move to
// one of the listed next statuses.
var allowedTransitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderPending:    {entity.OrderVerifying, entity.OrderDelivering, entity.OrderCancelled},
	entity.OrderVerifying:  {entity.OrderDelivering, entity.OrderCancelled},
	entity.OrderDelivering: {entity.OrderCompleted, entity.OrderDisputed},
	entity.OrderDisputed:   {entity.OrderCompleted, entity.OrderCancelled},
}

func canTransition(from, to entity.OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type UpdateOrderStatusInput struct {
	Status        entity.OrderStatus
	DisputeReason string
}

// UpdateStatus advances the order lifecycle. Sellers move orders toward
// delivery, buyers confirm completion or open disputes, admins resolve
// disputes either way.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, userID string, orderID string, input UpdateOrderStatusInput) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	isAdmin := user.Role == entity.RoleAdmin

	if !isAdmin && !uc.isParticipant(ctx, userID, order) {
		return nil, errors.Forbidden("You do not have access to this order", nil)
	}
	if !canTransition(order.Status, input.Status) {
		return nil, errors.Conflict(fmt.Sprintf("Cannot move order from %s to %s", order.Status, input.Status))
	}

	switch input.Status {
	case entity.OrderCompleted:
		if order.Status == entity.OrderDelivering && userID != order.BuyerID && !isAdmin {
			return nil, errors.Forbidden("Only the buyer can confirm delivery", nil)
		}
	case entity.OrderDisputed:
		if userID != order.BuyerID && !isAdmin {
			return nil, errors.Forbidden("Only the buyer can open a dispute", nil)
		}
		if input.DisputeReason == "" {
			return nil, errors.BadRequest("A dispute reason is required", nil)
		}
		order.DisputeReason = input.DisputeReason
	case entity.OrderVerifying, entity.OrderDelivering:
		if userID != order.SellerID && !isAdmin {
			return nil, errors.Forbidden("Only the seller can advance delivery", nil)
		}
	}

	prev := order.Status
	order.Status = input.Status
	order.UpdatedAt = time.Now()

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if input.Status == entity.OrderCompleted {
		uc.recordSale(ctx, order)
	}

	msg := &entity.ChatMessage{
		Text:     fmt.Sprintf("Order status changed: %s -> %s", prev, order.Status),
		IsSystem: true,
	}
	if err := uc.orderRepo.AppendMessage(ctx, order.ID, msg); err != nil {
		logger.Warn("Failed to append system message to order %s: %v", order.ID, err)
	}

	uc.notifier.NotifyUser(order.BuyerID, "order_updated", order)
	uc.notifier.NotifyUser(order.SellerID, "order_updated", order)
	return order, nil
}

// recordSale bumps the seller's sales counter once an order completes.
// Failures are logged, not surfaced: the order is already completed.
func (uc *OrderUseCase) recordSale(ctx context.Context, order *entity.Order) {
	seller, err := uc.userRepo.GetByID(ctx, order.SellerID)
	if err != nil {
		logger.Warn("Completed order %s references missing seller %s", order.ID, order.SellerID)
		return
	}
	seller.TotalSales++
	if err := uc.userRepo.Update(ctx, seller); err != nil {
		logger.Error("Failed to record sale for seller %s: %v", seller.ID, err)
	}
}

func (uc *OrderUseCase) PostMessage(ctx context.Context, userID, orderID, text string) (*entity.ChatMessage, error) {
	if text == "" {
		return nil, errors.BadRequest("Message text must not be empty", nil)
	}

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !uc.isParticipant(ctx, userID, order) {
		return nil, errors.Forbidden("You do not have access to this order", nil)
	}

	msg := &entity.ChatMessage{
		SenderID: userID,
		Text:     text,
	}
	if err := uc.orderRepo.AppendMessage(ctx, orderID, msg); err != nil {
		return nil, err
	}

	other := order.BuyerID
	if userID == order.BuyerID {
		other = order.SellerID
	}
	uc.notifier.NotifyUser(other, "order_message", msg)
	return msg, nil
}

func (uc *OrderUseCase) Messages(ctx context.Context, userID, orderID string) ([]*entity.ChatMessage, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !uc.isParticipant(ctx, userID, order) {
		return nil, errors.Forbidden("You do not have access to this order", nil)
	}
	return uc.orderRepo.ListMessages(ctx, orderID)
}

func (uc *OrderUseCase) isParticipant(ctx context.Context, userID string, order *entity.Order) bool {
	if userID == order.BuyerID || userID == order.SellerID {
		return true
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false
	}
	return user.Role == entity.RoleAdmin
}
