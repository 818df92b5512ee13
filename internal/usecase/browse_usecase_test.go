package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusmarket/internal/adapter/repository/memory"
	"nexusmarket/internal/domain/entity"
)

func browseFixture(t *testing.T) (*BrowseUseCase, *memory.ListingRepository) {
	t.Helper()
	listingRepo := memory.NewListingRepository()
	gameRepo := memory.NewGameRepository(listingRepo)
	categoryRepo := memory.NewCategoryRepository()
	return NewBrowseUseCase(listingRepo, gameRepo, categoryRepo), listingRepo
}

func seedListing(t *testing.T, repo *memory.ListingRepository, l entity.Listing) *entity.Listing {
	t.Helper()
	if l.GameID == "" {
		l.GameID = "g1"
	}
	if l.CategoryID == "" {
		l.CategoryID = "c1"
	}
	if l.Status == "" {
		l.Status = entity.ListingStatusActive
	}
	require.NoError(t, repo.Create(context.Background(), &l))
	return &l
}

func TestBrowseGroupedByTitle(t *testing.T) {
	uc, repo := browseFixture(t)

	// 5000 Gold appears first but its cheapest offer is dearer, so its
	// group must come second.
	seedListing(t, repo, entity.Listing{Title: "5000 Gold", Price: 7})
	seedListing(t, repo, entity.Listing{Title: "1000 Gold", Price: 10})
	seedListing(t, repo, entity.Listing{Title: "1000 Gold", Price: 5})

	groups, err := uc.BrowseGrouped(context.Background(), "g1", "c1", BrowseFilters{})
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "1000 Gold", groups[0].Title)
	assert.Equal(t, 5.0, groups[0].LowestPrice)
	require.Len(t, groups[0].Listings, 2)
	assert.Equal(t, 5.0, groups[0].Listings[0].Price)
	assert.Equal(t, 10.0, groups[0].Listings[1].Price)

	assert.Equal(t, "5000 Gold", groups[1].Title)
	assert.Equal(t, 7.0, groups[1].LowestPrice)
}

func TestBrowseGroupedOrdersGroupsByLowestPrice(t *testing.T) {
	uc, repo := browseFixture(t)

	seedListing(t, repo, entity.Listing{Title: "5000 Gold", Price: 40})
	seedListing(t, repo, entity.Listing{Title: "1000 Gold", Price: 10})
	seedListing(t, repo, entity.Listing{Title: "1000 Gold", Price: 5})

	groups, err := uc.BrowseGrouped(context.Background(), "g1", "c1", BrowseFilters{})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "1000 Gold", groups[0].Title)
	assert.Equal(t, "5000 Gold", groups[1].Title)

	// Equal lowest prices keep first-appearance order.
	seedListing(t, repo, entity.Listing{Title: "Bundle", Price: 5})
	groups, err = uc.BrowseGrouped(context.Background(), "g1", "c1", BrowseFilters{})
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "1000 Gold", groups[0].Title)
	assert.Equal(t, "Bundle", groups[1].Title)
}

func TestBrowseGroupedEmptyFilteredSet(t *testing.T) {
	uc, repo := browseFixture(t)

	seedListing(t, repo, entity.Listing{Title: "1000 Gold", Price: 10, DeliveryType: entity.DeliveryManual})
	seedListing(t, repo, entity.Listing{Title: "5000 Gold", Price: 40, DeliveryType: entity.DeliveryManual})

	groups, err := uc.BrowseGrouped(context.Background(), "g1", "c1", BrowseFilters{InstantOnly: true})
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestBrowseGroupedStableTieBreak(t *testing.T) {
	uc, repo := browseFixture(t)

	first := seedListing(t, repo, entity.Listing{Title: "Card", Price: 5, SellerID: "s1"})
	second := seedListing(t, repo, entity.Listing{Title: "Card", Price: 5, SellerID: "s2"})

	groups, err := uc.BrowseGrouped(context.Background(), "g1", "c1", BrowseFilters{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Listings, 2)

	// Equal prices keep repository order.
	assert.Equal(t, first.ID, groups[0].Listings[0].ID)
	assert.Equal(t, second.ID, groups[0].Listings[1].ID)
}

func TestBrowseGroupedMergesSameTitleAcrossVariantIDs(t *testing.T) {
	uc, repo := browseFixture(t)

	// Two configs may define distinct variants with the same display name;
	// the marketplace page groups by what the buyer sees.
	seedListing(t, repo, entity.Listing{Title: "100 Gems", Price: 3, VariantID: "v1"})
	seedListing(t, repo, entity.Listing{Title: "100 Gems", Price: 2, VariantID: "v2"})

	groups, err := uc.BrowseGrouped(context.Background(), "g1", "c1", BrowseFilters{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 2.0, groups[0].LowestPrice)
	assert.Len(t, groups[0].Listings, 2)
}

func TestBrowseEmptyFiltersMatchEverything(t *testing.T) {
	uc, repo := browseFixture(t)

	seedListing(t, repo, entity.Listing{Title: "A", Price: 1})
	seedListing(t, repo, entity.Listing{Title: "B", Price: 2, PlatformID: "pc"})

	listings, err := uc.Browse(context.Background(), "g1", "c1", BrowseFilters{})
	require.NoError(t, err)
	assert.Len(t, listings, 2)
}

func TestBrowsePlatformFilter(t *testing.T) {
	uc, repo := browseFixture(t)

	seedListing(t, repo, entity.Listing{Title: "A", Price: 1, PlatformID: "pc"})
	seedListing(t, repo, entity.Listing{Title: "B", Price: 2, PlatformID: "ps5"})
	seedListing(t, repo, entity.Listing{Title: "C", Price: 3})

	listings, err := uc.Browse(context.Background(), "g1", "c1", BrowseFilters{PlatformIDs: []string{"pc", "xbox"}})
	require.NoError(t, err)
	require.Len(t, listings, 2)
	// The platform-less listing is never excluded by a platform filter.
	assert.Equal(t, "A", listings[0].Title)
	assert.Equal(t, "C", listings[1].Title)
}

func TestBrowseInstantFilterMatchesInstantExactly(t *testing.T) {
	uc, repo := browseFixture(t)

	seedListing(t, repo, entity.Listing{Title: "A", Price: 1, DeliveryType: entity.DeliveryInstant})
	seedListing(t, repo, entity.Listing{Title: "B", Price: 2, DeliveryType: entity.DeliveryAuto})
	seedListing(t, repo, entity.Listing{Title: "C", Price: 3, DeliveryType: entity.DeliveryManual})

	listings, err := uc.Browse(context.Background(), "g1", "c1", BrowseFilters{InstantOnly: true})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "A", listings[0].Title)
}

func TestBrowseOnlineAndPriceFilters(t *testing.T) {
	uc, repo := browseFixture(t)

	seedListing(t, repo, entity.Listing{Title: "A", Price: 5, Seller: entity.SellerSnapshot{IsOnline: true}})
	seedListing(t, repo, entity.Listing{Title: "B", Price: 50, Seller: entity.SellerSnapshot{IsOnline: true}})
	seedListing(t, repo, entity.Listing{Title: "C", Price: 5})

	min, max := 1.0, 10.0
	listings, err := uc.Browse(context.Background(), "g1", "c1", BrowseFilters{
		OnlineOnly: true,
		MinPrice:   &min,
		MaxPrice:   &max,
	})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "A", listings[0].Title)
}

func TestBrowseSelectFieldFilter(t *testing.T) {
	uc, repo := browseFixture(t)

	seedListing(t, repo, entity.Listing{Title: "A", Price: 1, CustomValues: map[string]interface{}{"server": "EU"}})
	seedListing(t, repo, entity.Listing{Title: "B", Price: 2, CustomValues: map[string]interface{}{"server": "NA"}})
	seedListing(t, repo, entity.Listing{Title: "C", Price: 3})

	listings, err := uc.Browse(context.Background(), "g1", "c1", BrowseFilters{
		Fields: map[string]FieldFilter{"server": {Value: "EU"}},
	})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "A", listings[0].Title)
}

func TestBrowseRangeFieldFilter(t *testing.T) {
	uc, repo := browseFixture(t)

	seedListing(t, repo, entity.Listing{Title: "A", Price: 1, CustomValues: map[string]interface{}{"level": float64(30)}})
	seedListing(t, repo, entity.Listing{Title: "B", Price: 2, CustomValues: map[string]interface{}{"level": "55"}})
	seedListing(t, repo, entity.Listing{Title: "C", Price: 3, CustomValues: map[string]interface{}{"level": float64(90)}})

	min, max := 25.0, 60.0
	listings, err := uc.Browse(context.Background(), "g1", "c1", BrowseFilters{
		Fields: map[string]FieldFilter{"level": {Min: &min, Max: &max}},
	})
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "A", listings[0].Title)
	assert.Equal(t, "B", listings[1].Title)
}

func TestBrowseRangeFilterRejectsMissingOrNonNumeric(t *testing.T) {
	uc, repo := browseFixture(t)

	seedListing(t, repo, entity.Listing{Title: "A", Price: 1})
	seedListing(t, repo, entity.Listing{Title: "B", Price: 2, CustomValues: map[string]interface{}{"level": "unknown"}})
	seedListing(t, repo, entity.Listing{Title: "C", Price: 3, CustomValues: map[string]interface{}{"level": float64(10)}})

	min := 1.0
	listings, err := uc.Browse(context.Background(), "g1", "c1", BrowseFilters{
		Fields: map[string]FieldFilter{"level": {Min: &min}},
	})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "C", listings[0].Title)
}

func TestBrowseFiltersCompose(t *testing.T) {
	uc, repo := browseFixture(t)

	seedListing(t, repo, entity.Listing{
		Title: "A", Price: 4, PlatformID: "pc",
		DeliveryType: entity.DeliveryInstant,
		CustomValues: map[string]interface{}{"server": "EU"},
	})
	seedListing(t, repo, entity.Listing{
		Title: "B", Price: 4, PlatformID: "pc",
		DeliveryType: entity.DeliveryManual,
		CustomValues: map[string]interface{}{"server": "EU"},
	})

	listings, err := uc.Browse(context.Background(), "g1", "c1", BrowseFilters{
		PlatformIDs: []string{"pc"},
		InstantOnly: true,
		Fields:      map[string]FieldFilter{"server": {Value: "EU"}},
	})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "A", listings[0].Title)
}

func TestBrowseExcludesSoldOutAndDeleted(t *testing.T) {
	uc, repo := browseFixture(t)

	seedListing(t, repo, entity.Listing{Title: "A", Price: 1})
	seedListing(t, repo, entity.Listing{Title: "B", Price: 2, Status: entity.ListingStatusSoldOut})
	deleted := seedListing(t, repo, entity.Listing{Title: "C", Price: 3})
	require.NoError(t, repo.SoftDelete(context.Background(), deleted.ID))

	listings, err := uc.Browse(context.Background(), "g1", "c1", BrowseFilters{})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "A", listings[0].Title)
}

func TestFilterSchemaReturnsFilterableFields(t *testing.T) {
	listingRepo := memory.NewListingRepository()
	gameRepo := memory.NewGameRepository(listingRepo)
	categoryRepo := memory.NewCategoryRepository()
	uc := NewBrowseUseCase(listingRepo, gameRepo, categoryRepo)

	game := &entity.Game{
		Name:        "Test",
		CategoryIDs: []string{"c1"},
		CategoryConfigs: map[string]entity.CategoryConfig{
			"c1": {
				ListingFields: []entity.CustomField{
					{ID: "server", Label: "Server", Type: entity.FieldSelect, Options: []string{"EU", "NA"}, FilterType: entity.FilterSelect},
					{ID: "level", Label: "Level", Type: entity.FieldNumber, FilterType: entity.FilterRange},
					{ID: "notes", Label: "Notes", Type: entity.FieldText},
				},
			},
		},
	}
	require.NoError(t, gameRepo.Create(context.Background(), game))

	fields, err := uc.FilterSchema(context.Background(), game.ID, "c1")
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "server", fields[0].ID)
	assert.Equal(t, "level", fields[1].ID)

	// A pair with no config has nothing to filter on.
	fields, err = uc.FilterSchema(context.Background(), game.ID, "other")
	require.NoError(t, err)
	assert.Empty(t, fields)
}
