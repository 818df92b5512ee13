package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusmarket/internal/adapter/repository/memory"
	"nexusmarket/internal/domain/entity"
	"nexusmarket/pkg/errors"
)

type listingFixture struct {
	uc          *ListingUseCase
	listingRepo *memory.ListingRepository
	gameRepo    *memory.GameRepository
	userRepo    *memory.UserRepository
}

func newListingFixture(t *testing.T) *listingFixture {
	t.Helper()
	listingRepo := memory.NewListingRepository()
	gameRepo := memory.NewGameRepository(listingRepo)
	categoryRepo := memory.NewCategoryRepository()
	userRepo := memory.NewUserRepository()
	ctx := context.Background()

	require.NoError(t, categoryRepo.Create(ctx, &entity.Category{
		ID: "gift-cards", Name: "Gift Cards", Slug: "gift-cards",
		Layout: entity.LayoutGroupedGiftCard, IsActive: true,
	}))
	require.NoError(t, categoryRepo.Create(ctx, &entity.Category{
		ID: "accounts", Name: "Accounts", Slug: "accounts",
		Layout: entity.LayoutListGrid, IsActive: true,
	}))
	require.NoError(t, userRepo.Create(ctx, &entity.User{
		ID: "seller-1", Email: "seller@example.com", Username: "seller",
		Role: entity.RoleSeller, Status: entity.UserStatusActive,
	}))

	return &listingFixture{
		uc:          NewListingUseCase(listingRepo, gameRepo, categoryRepo, userRepo),
		listingRepo: listingRepo,
		gameRepo:    gameRepo,
		userRepo:    userRepo,
	}
}

func (f *listingFixture) seedGame(t *testing.T, game entity.Game) *entity.Game {
	t.Helper()
	if game.ID == "" {
		game.ID = "g1"
	}
	if game.Status == "" {
		game.Status = "active"
	}
	require.NoError(t, f.gameRepo.Create(context.Background(), &game))
	return &game
}

func variantGame(variants ...entity.GameVariant) entity.Game {
	return entity.Game{
		Name:        "Variant Game",
		Slug:        "variant-game",
		Image:       "https://cdn.example.com/game.png",
		CategoryIDs: []string{"gift-cards"},
		CategoryConfigs: map[string]entity.CategoryConfig{
			"gift-cards": {
				DeliveryOptions:    []string{entity.DeliveryInstant},
				PredefinedVariants: variants,
			},
		},
	}
}

func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok, "expected *errors.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateListingVariantRequiredForGroupedCategory(t *testing.T) {
	f := newListingFixture(t)
	f.seedGame(t, variantGame(entity.GameVariant{ID: "v1", Name: "1000 V-Bucks"}))

	_, err := f.uc.CreateListing(context.Background(), "seller-1", SaveListingInput{
		GameID: "g1", CategoryID: "gift-cards",
		Title: "My custom title", Price: 5, Stock: 10,
		DeliveryType: entity.DeliveryInstant,
	})
	assertErrCode(t, err, "BAD_REQUEST")
}

func TestCreateListingRejectsUnknownVariant(t *testing.T) {
	f := newListingFixture(t)
	f.seedGame(t, variantGame(entity.GameVariant{ID: "v1", Name: "1000 V-Bucks"}))

	_, err := f.uc.CreateListing(context.Background(), "seller-1", SaveListingInput{
		GameID: "g1", CategoryID: "gift-cards",
		Price: 5, Stock: 10,
		DeliveryType: entity.DeliveryInstant,
		VariantID:    "nope",
	})
	assertErrCode(t, err, "BAD_REQUEST")
}

func TestCreateListingDerivesPresentationFromVariant(t *testing.T) {
	f := newListingFixture(t)
	f.seedGame(t, variantGame(entity.GameVariant{
		ID: "v1", Name: "1000 V-Bucks", Subtitle: "V-Bucks",
		Image: "https://cdn.example.com/vbucks.png",
	}))

	listing, err := f.uc.CreateListing(context.Background(), "seller-1", SaveListingInput{
		GameID: "g1", CategoryID: "gift-cards",
		Title: "seller typed this", Price: 7.5, Stock: 20,
		DeliveryType: entity.DeliveryAuto,
		VariantID:    "v1",
	})
	require.NoError(t, err)

	// The variant definition wins over whatever the seller typed.
	assert.Equal(t, "1000 V-Bucks", listing.Title)
	assert.Equal(t, "V-Bucks", listing.Unit)
	assert.Equal(t, "https://cdn.example.com/vbucks.png", listing.Image)
	assert.Equal(t, entity.ListingStatusActive, listing.Status)
	assert.Equal(t, 1, listing.MinQty)
}

func TestCreateListingVariantImageFallsBackToGame(t *testing.T) {
	f := newListingFixture(t)
	f.seedGame(t, variantGame(entity.GameVariant{ID: "v1", Name: "500 Gems"}))

	listing, err := f.uc.CreateListing(context.Background(), "seller-1", SaveListingInput{
		GameID: "g1", CategoryID: "gift-cards",
		Price: 3, Stock: 5,
		DeliveryType: entity.DeliveryInstant,
		VariantID:    "v1",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/game.png", listing.Image)
}

func TestCreateListingFreeTitleRequiresTitle(t *testing.T) {
	f := newListingFixture(t)
	f.seedGame(t, entity.Game{
		Name: "Grid Game", Slug: "grid-game",
		CategoryIDs: []string{"accounts"},
	})

	_, err := f.uc.CreateListing(context.Background(), "seller-1", SaveListingInput{
		GameID: "g1", CategoryID: "accounts",
		Price: 50, Stock: 1,
		DeliveryType: entity.DeliveryManual,
	})
	assertErrCode(t, err, "BAD_REQUEST")
}

func TestCreateListingClearsVariantOutsideGroupedLayout(t *testing.T) {
	f := newListingFixture(t)
	f.seedGame(t, entity.Game{
		Name: "Grid Game", Slug: "grid-game",
		CategoryIDs: []string{"accounts"},
	})

	listing, err := f.uc.CreateListing(context.Background(), "seller-1", SaveListingInput{
		GameID: "g1", CategoryID: "accounts",
		Title: "Endgame account", Price: 120, Stock: 1,
		DeliveryType: entity.DeliveryManual,
		VariantID:    "stale-id",
	})
	require.NoError(t, err)
	assert.Empty(t, listing.VariantID)
	assert.Equal(t, "Endgame account", listing.Title)
}

func TestCreateListingRejectsDisallowedDelivery(t *testing.T) {
	f := newListingFixture(t)
	f.seedGame(t, entity.Game{
		Name: "Manual Only", Slug: "manual-only",
		CategoryIDs: []string{"accounts"},
		CategoryConfigs: map[string]entity.CategoryConfig{
			"accounts": {DeliveryOptions: []string{entity.DeliveryManual}},
		},
	})

	_, err := f.uc.CreateListing(context.Background(), "seller-1", SaveListingInput{
		GameID: "g1", CategoryID: "accounts",
		Title: "Account", Price: 10, Stock: 1,
		DeliveryType: entity.DeliveryInstant,
	})
	assertErrCode(t, err, "BAD_REQUEST")
}

func TestCreateListingAutoDeliveryFollowsInstantOption(t *testing.T) {
	f := newListingFixture(t)
	f.seedGame(t, entity.Game{
		Name: "Instant Game", Slug: "instant-game",
		CategoryIDs: []string{"accounts"},
		CategoryConfigs: map[string]entity.CategoryConfig{
			"accounts": {DeliveryOptions: []string{entity.DeliveryInstant}},
		},
	})

	listing, err := f.uc.CreateListing(context.Background(), "seller-1", SaveListingInput{
		GameID: "g1", CategoryID: "accounts",
		Title: "Key", Price: 10, Stock: 1,
		DeliveryType: entity.DeliveryAuto,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryAuto, listing.DeliveryType)
}

func TestCreateListingCustomFieldValidation(t *testing.T) {
	f := newListingFixture(t)
	f.seedGame(t, entity.Game{
		Name: "Field Game", Slug: "field-game",
		CategoryIDs: []string{"accounts"},
		CategoryConfigs: map[string]entity.CategoryConfig{
			"accounts": {
				DeliveryOptions: []string{entity.DeliveryManual},
				ListingFields: []entity.CustomField{
					{ID: "server", Label: "Server", Type: entity.FieldSelect, Options: []string{"EU", "NA"}, Required: true},
					{ID: "level", Label: "Level", Type: entity.FieldNumber},
				},
			},
		},
	})
	ctx := context.Background()

	base := SaveListingInput{
		GameID: "g1", CategoryID: "accounts",
		Title: "Account", Price: 10, Stock: 1,
		DeliveryType: entity.DeliveryManual,
	}

	// Required select missing.
	_, err := f.uc.CreateListing(ctx, "seller-1", base)
	assertErrCode(t, err, "BAD_REQUEST")

	// Select value outside the configured options.
	in := base
	in.CustomValues = map[string]interface{}{"server": "ASIA"}
	_, err = f.uc.CreateListing(ctx, "seller-1", in)
	assertErrCode(t, err, "BAD_REQUEST")

	// Non-numeric value in a number field.
	in = base
	in.CustomValues = map[string]interface{}{"server": "EU", "level": "max"}
	_, err = f.uc.CreateListing(ctx, "seller-1", in)
	assertErrCode(t, err, "BAD_REQUEST")

	// Numeric strings coerce; unknown keys are dropped.
	in = base
	in.CustomValues = map[string]interface{}{"server": "EU", "level": "42", "bogus": "x"}
	listing, err := f.uc.CreateListing(ctx, "seller-1", in)
	require.NoError(t, err)
	assert.Equal(t, 42.0, listing.CustomValues["level"])
	assert.Equal(t, "EU", listing.CustomValues["server"])
	assert.NotContains(t, listing.CustomValues, "bogus")
}

func TestCreateListingRejectsNonMemberCategory(t *testing.T) {
	f := newListingFixture(t)
	f.seedGame(t, entity.Game{
		Name: "Grid Game", Slug: "grid-game",
		CategoryIDs: []string{"accounts"},
	})

	_, err := f.uc.CreateListing(context.Background(), "seller-1", SaveListingInput{
		GameID: "g1", CategoryID: "gift-cards",
		Price: 5, Stock: 1, DeliveryType: entity.DeliveryInstant,
	})
	assertErrCode(t, err, "BAD_REQUEST")
}

func TestCreateListingRejectsSuspendedSeller(t *testing.T) {
	f := newListingFixture(t)
	f.seedGame(t, entity.Game{
		Name: "Grid Game", Slug: "grid-game",
		CategoryIDs: []string{"accounts"},
	})
	require.NoError(t, f.userRepo.Create(context.Background(), &entity.User{
		ID: "seller-2", Email: "s2@example.com", Username: "s2",
		Role: entity.RoleSeller, Status: entity.UserStatusSuspended,
	}))

	_, err := f.uc.CreateListing(context.Background(), "seller-2", SaveListingInput{
		GameID: "g1", CategoryID: "accounts",
		Title: "Account", Price: 10, Stock: 1,
		DeliveryType: entity.DeliveryManual,
	})
	assertErrCode(t, err, "FORBIDDEN")
}

func TestUpdateListingOwnershipEnforced(t *testing.T) {
	f := newListingFixture(t)
	f.seedGame(t, entity.Game{
		Name: "Grid Game", Slug: "grid-game",
		CategoryIDs: []string{"accounts"},
	})
	ctx := context.Background()

	listing, err := f.uc.CreateListing(ctx, "seller-1", SaveListingInput{
		GameID: "g1", CategoryID: "accounts",
		Title: "Account", Price: 10, Stock: 1,
		DeliveryType: entity.DeliveryManual,
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateListing(ctx, "someone-else", listing.ID, SaveListingInput{
		Title: "Hijacked", Price: 1, Stock: 1,
		DeliveryType: entity.DeliveryManual,
	})
	assertErrCode(t, err, "FORBIDDEN")

	err = f.uc.DeleteListing(ctx, "someone-else", listing.ID)
	assertErrCode(t, err, "FORBIDDEN")
}

func TestUpdateListingReactivatesSoldOutWithStock(t *testing.T) {
	f := newListingFixture(t)
	f.seedGame(t, entity.Game{
		Name: "Grid Game", Slug: "grid-game",
		CategoryIDs: []string{"accounts"},
	})
	ctx := context.Background()

	listing, err := f.uc.CreateListing(ctx, "seller-1", SaveListingInput{
		GameID: "g1", CategoryID: "accounts",
		Title: "Account", Price: 10, Stock: 1,
		DeliveryType: entity.DeliveryManual,
	})
	require.NoError(t, err)

	listing.Status = entity.ListingStatusSoldOut
	listing.Stock = 0
	require.NoError(t, f.listingRepo.Update(ctx, listing))

	updated, err := f.uc.UpdateListing(ctx, "seller-1", listing.ID, SaveListingInput{
		Title: "Account", Price: 10, Stock: 4,
		DeliveryType: entity.DeliveryManual,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusActive, updated.Status)
	assert.Equal(t, 4, updated.Stock)
}

func TestUpdateListingIdempotent(t *testing.T) {
	f := newListingFixture(t)
	f.seedGame(t, entity.Game{
		Name: "Grid Game", Slug: "grid-game",
		CategoryIDs: []string{"accounts"},
	})
	ctx := context.Background()

	listing, err := f.uc.CreateListing(ctx, "seller-1", SaveListingInput{
		GameID: "g1", CategoryID: "accounts",
		Title: "Account", Price: 10, Stock: 2,
		DeliveryType: entity.DeliveryManual,
	})
	require.NoError(t, err)

	input := SaveListingInput{
		Title: "Renamed account", Description: "Fresh", Price: 12, Stock: 3,
		DeliveryType: entity.DeliveryManual,
	}

	first, err := f.uc.UpdateListing(ctx, "seller-1", listing.ID, input)
	require.NoError(t, err)
	second, err := f.uc.UpdateListing(ctx, "seller-1", listing.ID, input)
	require.NoError(t, err)

	// Replaying the same update changes nothing but the timestamp.
	first.UpdatedAt = second.UpdatedAt
	assert.Equal(t, first, second)

	stored, total, err := f.uc.ListSellerListings(ctx, "seller-1", "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, stored, 1)
	assert.Equal(t, "Renamed account", stored[0].Title)
	assert.Equal(t, 12.0, stored[0].Price)
}

func TestDeleteListingSoftDeletes(t *testing.T) {
	f := newListingFixture(t)
	f.seedGame(t, entity.Game{
		Name: "Grid Game", Slug: "grid-game",
		CategoryIDs: []string{"accounts"},
	})
	ctx := context.Background()

	listing, err := f.uc.CreateListing(ctx, "seller-1", SaveListingInput{
		GameID: "g1", CategoryID: "accounts",
		Title: "Account", Price: 10, Stock: 1,
		DeliveryType: entity.DeliveryManual,
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteListing(ctx, "seller-1", listing.ID))
	_, err = f.uc.GetListing(ctx, listing.ID)
	assertErrCode(t, err, "NOT_FOUND")
}
