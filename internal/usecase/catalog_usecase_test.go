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

func catalogFixture(t *testing.T) (*CatalogUseCase, *memory.GameRepository, *memory.ListingRepository) {
	t.Helper()
	listingRepo := memory.NewListingRepository()
	gameRepo := memory.NewGameRepository(listingRepo)
	uc := NewCatalogUseCase(gameRepo, memory.NewCategoryRepository(), memory.NewPlatformRepository())
	return uc, gameRepo, listingRepo
}

func giftCardConfig(variants ...entity.GameVariant) entity.CategoryConfig {
	return entity.CategoryConfig{
		DeliveryOptions:    []string{entity.DeliveryInstant, entity.DeliveryManual},
		PredefinedVariants: variants,
	}
}

func TestUpdateGameCascadesVariantRename(t *testing.T) {
	uc, _, listingRepo := catalogFixture(t)
	ctx := context.Background()

	game, err := uc.CreateGame(ctx, SaveGameInput{
		Name:        "Azeroth Online",
		Image:       "https://cdn.example.com/azeroth.png",
		CategoryIDs: []string{"gift-cards"},
		CategoryConfigs: map[string]entity.CategoryConfig{
			"gift-cards": giftCardConfig(entity.GameVariant{ID: "v1", Name: "1000 Gold", Subtitle: "Gold"}),
		},
		Status: "active",
	})
	require.NoError(t, err)

	listing := &entity.Listing{
		GameID:     game.ID,
		CategoryID: "gift-cards",
		Title:      "1000 Gold",
		Unit:       "Gold",
		Price:      9.99,
		Stock:      3,
		SellerID:   "seller-1",
		Status:     entity.ListingStatusActive,
		VariantID:  "v1",
	}
	require.NoError(t, listingRepo.Create(ctx, listing))

	_, err = uc.UpdateGame(ctx, game.ID, SaveGameInput{
		Name:        "Azeroth Online",
		Image:       "https://cdn.example.com/azeroth.png",
		CategoryIDs: []string{"gift-cards"},
		CategoryConfigs: map[string]entity.CategoryConfig{
			"gift-cards": giftCardConfig(entity.GameVariant{
				ID: "v1", Name: "1000 Gold Coins", Subtitle: "Coins",
				Image: "https://cdn.example.com/coins.png",
			}),
		},
		Status: "active",
	})
	require.NoError(t, err)

	synced, err := listingRepo.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "1000 Gold Coins", synced.Title)
	assert.Equal(t, "Coins", synced.Unit)
	assert.Equal(t, "https://cdn.example.com/coins.png", synced.Image)
	// Seller-owned fields survive the cascade.
	assert.Equal(t, 9.99, synced.Price)
	assert.Equal(t, 3, synced.Stock)
	assert.Equal(t, "seller-1", synced.SellerID)
}

func TestUpdateGameLeavesOrphanedListingsUntouched(t *testing.T) {
	uc, _, listingRepo := catalogFixture(t)
	ctx := context.Background()

	game, err := uc.CreateGame(ctx, SaveGameInput{
		Name:        "Orphan Test",
		CategoryIDs: []string{"gift-cards"},
		CategoryConfigs: map[string]entity.CategoryConfig{
			"gift-cards": giftCardConfig(
				entity.GameVariant{ID: "keep", Name: "Keep"},
				entity.GameVariant{ID: "drop", Name: "Drop"},
			),
		},
		Status: "active",
	})
	require.NoError(t, err)

	orphan := &entity.Listing{
		GameID: game.ID, CategoryID: "gift-cards",
		Title: "Drop", Price: 4, SellerID: "s1",
		Status: entity.ListingStatusActive, VariantID: "drop",
	}
	require.NoError(t, listingRepo.Create(ctx, orphan))

	// The saved config no longer carries the "drop" variant.
	_, err = uc.UpdateGame(ctx, game.ID, SaveGameInput{
		Name:        "Orphan Test",
		CategoryIDs: []string{"gift-cards"},
		CategoryConfigs: map[string]entity.CategoryConfig{
			"gift-cards": giftCardConfig(entity.GameVariant{ID: "keep", Name: "Keep Renamed"}),
		},
		Status: "active",
	})
	require.NoError(t, err)

	got, err := listingRepo.GetByID(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drop", got.Title)
	assert.Equal(t, "drop", got.VariantID)
}

func TestCascadeImageAndUnitFallbacks(t *testing.T) {
	uc, _, listingRepo := catalogFixture(t)
	ctx := context.Background()

	game, err := uc.CreateGame(ctx, SaveGameInput{
		Name:        "Fallback Test",
		Image:       "https://cdn.example.com/game.png",
		CategoryIDs: []string{"gift-cards"},
		CategoryConfigs: map[string]entity.CategoryConfig{
			"gift-cards": giftCardConfig(entity.GameVariant{ID: "v1", Name: "Pack", Subtitle: "Credits"}),
		},
		Status: "active",
	})
	require.NoError(t, err)

	listing := &entity.Listing{
		GameID: game.ID, CategoryID: "gift-cards",
		Title: "Pack", Unit: "Credits", Image: "https://cdn.example.com/old.png",
		Price: 1, SellerID: "s1", Status: entity.ListingStatusActive, VariantID: "v1",
	}
	require.NoError(t, listingRepo.Create(ctx, listing))

	// Variant without image or subtitle: image falls back to the game image,
	// unit keeps its previous value.
	_, err = uc.UpdateGame(ctx, game.ID, SaveGameInput{
		Name:        "Fallback Test",
		Image:       "https://cdn.example.com/game.png",
		CategoryIDs: []string{"gift-cards"},
		CategoryConfigs: map[string]entity.CategoryConfig{
			"gift-cards": giftCardConfig(entity.GameVariant{ID: "v1", Name: "Pack XL"}),
		},
		Status: "active",
	})
	require.NoError(t, err)

	got, err := listingRepo.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pack XL", got.Title)
	assert.Equal(t, "https://cdn.example.com/game.png", got.Image)
	assert.Equal(t, "Credits", got.Unit)
}

func TestSetConfigCascades(t *testing.T) {
	uc, _, listingRepo := catalogFixture(t)
	ctx := context.Background()

	game, err := uc.CreateGame(ctx, SaveGameInput{
		Name:        "Config Save",
		CategoryIDs: []string{"top-up"},
		CategoryConfigs: map[string]entity.CategoryConfig{
			"top-up": giftCardConfig(entity.GameVariant{ID: "v1", Name: "60 Gems"}),
		},
		Status: "active",
	})
	require.NoError(t, err)

	listing := &entity.Listing{
		GameID: game.ID, CategoryID: "top-up",
		Title: "60 Gems", Price: 2, SellerID: "s1",
		Status: entity.ListingStatusActive, VariantID: "v1",
	}
	require.NoError(t, listingRepo.Create(ctx, listing))

	_, err = uc.SetConfig(ctx, game.ID, "top-up",
		giftCardConfig(entity.GameVariant{ID: "v1", Name: "60 Gems + Bonus"}))
	require.NoError(t, err)

	got, err := listingRepo.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "60 Gems + Bonus", got.Title)
}

func TestSetConfigRejectsNonMemberCategory(t *testing.T) {
	uc, _, _ := catalogFixture(t)
	ctx := context.Background()

	game, err := uc.CreateGame(ctx, SaveGameInput{
		Name:        "Members Only",
		CategoryIDs: []string{"accounts"},
		Status:      "active",
	})
	require.NoError(t, err)

	_, err = uc.SetConfig(ctx, game.ID, "gift-cards", giftCardConfig())
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestConfigValidationRejectsDuplicates(t *testing.T) {
	uc, _, _ := catalogFixture(t)
	ctx := context.Background()

	_, err := uc.CreateGame(ctx, SaveGameInput{
		Name:        "Dup Variants",
		CategoryIDs: []string{"gift-cards"},
		CategoryConfigs: map[string]entity.CategoryConfig{
			"gift-cards": giftCardConfig(
				entity.GameVariant{ID: "v1", Name: "A"},
				entity.GameVariant{ID: "v1", Name: "B"},
			),
		},
		Status: "active",
	})
	require.Error(t, err)

	_, err = uc.CreateGame(ctx, SaveGameInput{
		Name:        "Dup Fields",
		CategoryIDs: []string{"accounts"},
		CategoryConfigs: map[string]entity.CategoryConfig{
			"accounts": {
				DeliveryOptions: []string{entity.DeliveryManual},
				ListingFields: []entity.CustomField{
					{ID: "rank", Label: "Rank", Type: entity.FieldText},
					{ID: "rank", Label: "Rank Again", Type: entity.FieldText},
				},
			},
		},
		Status: "active",
	})
	require.Error(t, err)
}

func TestConfigValidationRejectsUnknownCategory(t *testing.T) {
	uc, _, _ := catalogFixture(t)

	_, err := uc.CreateGame(context.Background(), SaveGameInput{
		Name:        "Stray Config",
		CategoryIDs: []string{"accounts"},
		CategoryConfigs: map[string]entity.CategoryConfig{
			"gift-cards": giftCardConfig(),
		},
		Status: "active",
	})
	require.Error(t, err)
}

func TestCreateGameRejectsDuplicateSlug(t *testing.T) {
	uc, _, _ := catalogFixture(t)
	ctx := context.Background()

	_, err := uc.CreateGame(ctx, SaveGameInput{Name: "Star Saga", Status: "active"})
	require.NoError(t, err)

	_, err = uc.CreateGame(ctx, SaveGameInput{Name: "Star Saga", Status: "active"})
	require.Error(t, err)
}

func TestConfigFallsBackToPermissiveDefault(t *testing.T) {
	uc, _, _ := catalogFixture(t)
	ctx := context.Background()

	game, err := uc.CreateGame(ctx, SaveGameInput{
		Name:        "No Config",
		CategoryIDs: []string{"accounts"},
		Status:      "active",
	})
	require.NoError(t, err)

	cfg, err := uc.Config(ctx, game.ID, "accounts")
	require.NoError(t, err)
	assert.Empty(t, cfg.ListingFields)
	assert.Empty(t, cfg.PredefinedVariants)
	assert.True(t, cfg.AllowsDelivery(entity.DeliveryInstant))
	assert.True(t, cfg.AllowsDelivery(entity.DeliveryManual))
}
