package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusmarket/internal/adapter/repository/memory"
	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

type recordedEvent struct {
	UserID string
	Event  string
}

type recordingNotifier struct {
	events []recordedEvent
}

func (n *recordingNotifier) NotifyUser(userID, event string, payload interface{}) {
	n.events = append(n.events, recordedEvent{UserID: userID, Event: event})
}

type orderFixture struct {
	uc          *OrderUseCase
	orderRepo   *memory.OrderRepository
	listingRepo *memory.ListingRepository
	gameRepo    *memory.GameRepository
	userRepo    *memory.UserRepository
	couponRepo  *memory.CouponRepository
	notifier    *recordingNotifier
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	listingRepo := memory.NewListingRepository()
	orderRepo := memory.NewOrderRepository(listingRepo)
	gameRepo := memory.NewGameRepository(listingRepo)
	userRepo := memory.NewUserRepository()
	couponRepo := memory.NewCouponRepository()
	notifier := &recordingNotifier{}
	ctx := context.Background()

	for _, u := range []*entity.User{
		{ID: "buyer-1", Email: "buyer@example.com", Username: "buyer", Role: entity.RoleUser, Status: entity.UserStatusActive},
		{ID: "seller-1", Email: "seller@example.com", Username: "seller", Role: entity.RoleSeller, Status: entity.UserStatusActive},
		{ID: "admin-1", Email: "admin@example.com", Username: "admin", Role: entity.RoleAdmin, Status: entity.UserStatusActive},
	} {
		require.NoError(t, userRepo.Create(ctx, u))
	}

	require.NoError(t, gameRepo.Create(ctx, &entity.Game{
		ID: "g1", Name: "Test Game", Slug: "test-game",
		CategoryIDs: []string{"top-up"}, Status: "active",
	}))

	return &orderFixture{
		uc:          NewOrderUseCase(orderRepo, listingRepo, gameRepo, userRepo, couponRepo, notifier),
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		gameRepo:    gameRepo,
		userRepo:    userRepo,
		couponRepo:  couponRepo,
		notifier:    notifier,
	}
}

func (f *orderFixture) seedOffer(t *testing.T, l entity.Listing) *entity.Listing {
	t.Helper()
	if l.GameID == "" {
		l.GameID = "g1"
	}
	if l.CategoryID == "" {
		l.CategoryID = "top-up"
	}
	if l.SellerID == "" {
		l.SellerID = "seller-1"
	}
	if l.Status == "" {
		l.Status = entity.ListingStatusActive
	}
	if l.MinQty == 0 {
		l.MinQty = 1
	}
	require.NoError(t, f.listingRepo.Create(context.Background(), &l))
	return &l
}

func TestCheckoutDecrementsStockAndNotifiesSeller(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	offer := f.seedOffer(t, entity.Listing{Title: "1000 Gold", Price: 4, Stock: 5})

	order, err := f.uc.Checkout(ctx, "buyer-1", CheckoutInput{ListingID: offer.ID, Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, 12.0, order.TotalPrice)
	assert.Equal(t, "seller-1", order.SellerID)

	remaining, err := f.listingRepo.GetByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining.Stock)

	msgs, err := f.orderRepo.ListMessages(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].IsSystem)
	assert.Contains(t, msgs[0].Text, "3x 1000 Gold")

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, recordedEvent{UserID: "seller-1", Event: "order_created"}, f.notifier.events[0])
}

func TestCheckoutLastUnitMarksListingSoldOut(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	offer := f.seedOffer(t, entity.Listing{Title: "Key", Price: 10, Stock: 1})

	_, err := f.uc.Checkout(ctx, "buyer-1", CheckoutInput{ListingID: offer.ID, Quantity: 1})
	require.NoError(t, err)

	sold, err := f.listingRepo.GetByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusSoldOut, sold.Status)
	assert.Equal(t, 0, sold.Stock)
}

func TestCheckoutRejectsOwnListing(t *testing.T) {
	f := newOrderFixture(t)
	offer := f.seedOffer(t, entity.Listing{Title: "Key", Price: 10, Stock: 1})

	_, err := f.uc.Checkout(context.Background(), "seller-1", CheckoutInput{ListingID: offer.ID, Quantity: 1})
	assertErrCode(t, err, "BAD_REQUEST")
}

func TestCheckoutQuantityRules(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	offer := f.seedOffer(t, entity.Listing{Title: "Gold", Price: 2, Stock: 10, MinQty: 5})

	_, err := f.uc.Checkout(ctx, "buyer-1", CheckoutInput{ListingID: offer.ID, Quantity: 3})
	assertErrCode(t, err, "BAD_REQUEST")

	_, err = f.uc.Checkout(ctx, "buyer-1", CheckoutInput{ListingID: offer.ID, Quantity: 20})
	assertErrCode(t, err, "CONFLICT")

	// Zero quantity falls back to the listing minimum.
	order, err := f.uc.Checkout(ctx, "buyer-1", CheckoutInput{ListingID: offer.ID})
	require.NoError(t, err)
	assert.Equal(t, 5, order.Quantity)
	assert.Equal(t, 10.0, order.TotalPrice)
}

func TestCheckoutEnforcesBuyerFields(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	game, err := f.gameRepo.GetByID(ctx, "g1")
	require.NoError(t, err)
	game.CategoryConfigs = map[string]entity.CategoryConfig{
		"top-up": {
			DeliveryOptions: []string{entity.DeliveryManual},
			BuyerFields: []entity.CustomField{
				{ID: "player_id", Label: "Player ID", Type: entity.FieldText, Required: true},
				{ID: "note", Label: "Note", Type: entity.FieldText},
			},
		},
	}
	require.NoError(t, f.gameRepo.Update(ctx, game))

	offer := f.seedOffer(t, entity.Listing{Title: "Top-up", Price: 5, Stock: 10})

	_, err = f.uc.Checkout(ctx, "buyer-1", CheckoutInput{ListingID: offer.ID, Quantity: 1})
	assertErrCode(t, err, "BAD_REQUEST")

	order, err := f.uc.Checkout(ctx, "buyer-1", CheckoutInput{
		ListingID: offer.ID, Quantity: 1,
		BuyerInputValues: map[string]string{"player_id": "p-123", "stray": "drop me"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"player_id": "p-123"}, order.BuyerInputValues)
}

func TestCheckoutOrphanedListingPassesBuyerValuesThrough(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	offer := f.seedOffer(t, entity.Listing{GameID: "gone", Title: "Orphan", Price: 5, Stock: 2})

	order, err := f.uc.Checkout(ctx, "buyer-1", CheckoutInput{
		ListingID: offer.ID, Quantity: 1,
		BuyerInputValues: map[string]string{"anything": "goes"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"anything": "goes"}, order.BuyerInputValues)
}

func TestCheckoutAppliesCoupon(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	offer := f.seedOffer(t, entity.Listing{Title: "Gold", Price: 10, Stock: 10})

	require.NoError(t, f.couponRepo.Create(ctx, &entity.Coupon{
		Code: "SAVE20", Type: entity.CouponPercentage, Discount: 20,
		MaxUses: 1, Status: entity.CouponStatusActive,
	}))

	order, err := f.uc.Checkout(ctx, "buyer-1", CheckoutInput{
		ListingID: offer.ID, Quantity: 2, CouponCode: "SAVE20",
	})
	require.NoError(t, err)
	assert.Equal(t, 16.0, order.TotalPrice)
	assert.Equal(t, "SAVE20", order.CouponCode)

	// The single use is consumed.
	_, err = f.uc.Checkout(ctx, "buyer-1", CheckoutInput{
		ListingID: offer.ID, Quantity: 2, CouponCode: "SAVE20",
	})
	assertErrCode(t, err, "CONFLICT")
}

// createFailOrderRepo rejects every order create, standing in for the
// transactional stock re-check losing the race.
type createFailOrderRepo struct {
	repository.OrderRepository
}

func (createFailOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	return errors.Conflict("Insufficient stock")
}

func TestCheckoutReleasesCouponWhenOrderCreateFails(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	offer := f.seedOffer(t, entity.Listing{Title: "Gold", Price: 10, Stock: 10})

	require.NoError(t, f.couponRepo.Create(ctx, &entity.Coupon{
		Code: "SAVE20", Type: entity.CouponPercentage, Discount: 20,
		MaxUses: 1, Status: entity.CouponStatusActive,
	}))

	uc := NewOrderUseCase(
		createFailOrderRepo{f.orderRepo},
		f.listingRepo, f.gameRepo, f.userRepo, f.couponRepo, f.notifier,
	)

	_, err := uc.Checkout(ctx, "buyer-1", CheckoutInput{
		ListingID: offer.ID, Quantity: 1, CouponCode: "SAVE20",
	})
	assertErrCode(t, err, "CONFLICT")

	// The redeemed use came back, so the coupon still works.
	coupon, err := f.couponRepo.GetByCode(ctx, "SAVE20")
	require.NoError(t, err)
	assert.Equal(t, 0, coupon.Uses)
	assert.Equal(t, entity.CouponStatusActive, coupon.Status)
}

func TestCheckoutRejectsInactiveListing(t *testing.T) {
	f := newOrderFixture(t)
	offer := f.seedOffer(t, entity.Listing{Title: "Sold", Price: 5, Stock: 0, Status: entity.ListingStatusSoldOut})

	_, err := f.uc.Checkout(context.Background(), "buyer-1", CheckoutInput{ListingID: offer.ID, Quantity: 1})
	assertErrCode(t, err, "CONFLICT")
}

func (f *orderFixture) checkout(t *testing.T) *entity.Order {
	t.Helper()
	offer := f.seedOffer(t, entity.Listing{Title: "Gold", Price: 5, Stock: 10})
	order, err := f.uc.Checkout(context.Background(), "buyer-1", CheckoutInput{ListingID: offer.ID, Quantity: 1})
	require.NoError(t, err)
	return order
}

func TestUpdateStatusSellerAdvancesDelivery(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.checkout(t)

	_, err := f.uc.UpdateStatus(ctx, "buyer-1", order.ID, UpdateOrderStatusInput{Status: entity.OrderDelivering})
	assertErrCode(t, err, "FORBIDDEN")

	updated, err := f.uc.UpdateStatus(ctx, "seller-1", order.ID, UpdateOrderStatusInput{Status: entity.OrderDelivering})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivering, updated.Status)
}

func TestUpdateStatusBuyerConfirmsCompletion(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.checkout(t)

	_, err := f.uc.UpdateStatus(ctx, "seller-1", order.ID, UpdateOrderStatusInput{Status: entity.OrderDelivering})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, "seller-1", order.ID, UpdateOrderStatusInput{Status: entity.OrderCompleted})
	assertErrCode(t, err, "FORBIDDEN")

	updated, err := f.uc.UpdateStatus(ctx, "buyer-1", order.ID, UpdateOrderStatusInput{Status: entity.OrderCompleted})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompleted, updated.Status)

	// Completion bumps the seller's sales counter.
	seller, err := f.userRepo.GetByID(ctx, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, 1, seller.TotalSales)
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	f := newOrderFixture(t)
	order := f.checkout(t)

	_, err := f.uc.UpdateStatus(context.Background(), "buyer-1", order.ID, UpdateOrderStatusInput{Status: entity.OrderCompleted})
	assertErrCode(t, err, "CONFLICT")
}

func TestUpdateStatusDisputeRequiresReason(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.checkout(t)

	_, err := f.uc.UpdateStatus(ctx, "seller-1", order.ID, UpdateOrderStatusInput{Status: entity.OrderDelivering})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, "seller-1", order.ID, UpdateOrderStatusInput{
		Status: entity.OrderDisputed, DisputeReason: "never delivered",
	})
	assertErrCode(t, err, "FORBIDDEN")

	_, err = f.uc.UpdateStatus(ctx, "buyer-1", order.ID, UpdateOrderStatusInput{Status: entity.OrderDisputed})
	assertErrCode(t, err, "BAD_REQUEST")

	disputed, err := f.uc.UpdateStatus(ctx, "buyer-1", order.ID, UpdateOrderStatusInput{
		Status: entity.OrderDisputed, DisputeReason: "never delivered",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDisputed, disputed.Status)
	assert.Equal(t, "never delivered", disputed.DisputeReason)
}

func TestUpdateStatusAdminResolvesDispute(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.checkout(t)

	_, err := f.uc.UpdateStatus(ctx, "seller-1", order.ID, UpdateOrderStatusInput{Status: entity.OrderDelivering})
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, "buyer-1", order.ID, UpdateOrderStatusInput{
		Status: entity.OrderDisputed, DisputeReason: "wrong item",
	})
	require.NoError(t, err)

	resolved, err := f.uc.UpdateStatus(ctx, "admin-1", order.ID, UpdateOrderStatusInput{Status: entity.OrderCancelled})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, resolved.Status)
}

func TestOrderChatParticipantGate(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.checkout(t)

	_, err := f.uc.PostMessage(ctx, "buyer-1", order.ID, "When will you deliver?")
	require.NoError(t, err)

	require.NoError(t, f.userRepo.Create(ctx, &entity.User{
		ID: "stranger", Email: "x@example.com", Username: "x",
		Role: entity.RoleUser, Status: entity.UserStatusActive,
	}))
	_, err = f.uc.PostMessage(ctx, "stranger", order.ID, "Let me in")
	assertErrCode(t, err, "FORBIDDEN")

	_, err = f.uc.Messages(ctx, "stranger", order.ID)
	assertErrCode(t, err, "FORBIDDEN")

	// Checkout system message plus the buyer's chat line; admins can read.
	msgs, err := f.uc.Messages(ctx, "admin-1", order.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "When will you deliver?", msgs[1].Text)
}

func TestGetOrderRestrictedToParticipants(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.checkout(t)

	got, err := f.uc.GetOrder(ctx, "seller-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	require.NoError(t, f.userRepo.Create(ctx, &entity.User{
		ID: "stranger-2", Email: "y@example.com", Username: "y",
		Role: entity.RoleUser, Status: entity.UserStatusActive,
	}))
	_, err = f.uc.GetOrder(ctx, "stranger-2", order.ID)
	assertErrCode(t, err, "FORBIDDEN")
}
