package usecase

import (
	"context"
	"sort"
	"strconv"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
)

// BrowseUseCase serves the marketplace read side: filtered flat lists for
// LIST_GRID categories and title-grouped variant cards for GROUPED_GIFT_CARD
// categories.
type BrowseUseCase struct {
	listingRepo  repository.ListingRepository
	gameRepo     repository.GameRepository
	categoryRepo repository.CategoryRepository
}

func NewBrowseUseCase(
	listingRepo repository.ListingRepository,
	gameRepo repository.GameRepository,
	categoryRepo repository.CategoryRepository,
) *BrowseUseCase {
	return &BrowseUseCase{
		listingRepo:  listingRepo,
		gameRepo:     gameRepo,
		categoryRepo: categoryRepo,
	}
}

// FieldFilter is one active custom-field predicate. Select filters carry
// Value; range filters carry Min and/or Max.
type FieldFilter struct {
	Value string
	Min   *float64
	Max   *float64
}

// BrowseFilters is the full conjunction of active predicates. Zero values
// mean "not active"; an empty filter set matches everything.
type BrowseFilters struct {
	PlatformIDs []string
	OnlineOnly  bool
	InstantOnly bool
	MinPrice    *float64
	MaxPrice    *float64
	Fields      map[string]FieldFilter
}

// VariantGroup is one card on a grouped gift-card page: every offer sharing
// a title, cheapest first.
type VariantGroup struct {
	Title       string            `json:"title"`
	Unit        string            `json:"unit"`
	Image       string            `json:"image,omitempty"`
	LowestPrice float64           `json:"lowest_price"`
	Listings    []*entity.Listing `json:"listings"`
}

// Browse returns the filtered flat listing set for a game+category pair.
func (uc *BrowseUseCase) Browse(ctx context.Context, gameID, categoryID string, filters BrowseFilters) ([]*entity.Listing, error) {
	listings, err := uc.listingRepo.ListByGameCategory(ctx, gameID, categoryID)
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Listing, 0, len(listings))
	for _, l := range listings {
		if matches(l, filters) {
			out = append(out, l)
		}
	}
	return out, nil
}

// BrowseGrouped returns the variant cards for a grouped gift-card page.
// Grouping is keyed on listing title; filters are applied per listing before
// grouping, so a group disappears once all its offers are filtered out.
// Within a group offers are sorted by ascending price, ties keeping
// repository order, and the first offer is the default selection.
func (uc *BrowseUseCase) BrowseGrouped(ctx context.Context, gameID, categoryID string, filters BrowseFilters) ([]*VariantGroup, error) {
	listings, err := uc.Browse(ctx, gameID, categoryID, filters)
	if err != nil {
		return nil, err
	}
	return GroupByTitle(listings), nil
}

// GroupByTitle buckets listings by exact title. Groups are ordered
// ascending by their lowest price, ties keeping first appearance of each
// title in the input.
func GroupByTitle(listings []*entity.Listing) []*VariantGroup {
	index := make(map[string]*VariantGroup)
	var groups []*VariantGroup

	for _, l := range listings {
		group, ok := index[l.Title]
		if !ok {
			group = &VariantGroup{
				Title: l.Title,
				Unit:  l.Unit,
				Image: l.Image,
			}
			index[l.Title] = group
			groups = append(groups, group)
		}
		group.Listings = append(group.Listings, l)
	}

	for _, group := range groups {
		sort.SliceStable(group.Listings, func(i, j int) bool {
			return group.Listings[i].Price < group.Listings[j].Price
		})
		group.LowestPrice = group.Listings[0].Price
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].LowestPrice < groups[j].LowestPrice
	})
	return groups
}

// matches evaluates the full filter conjunction against one listing.
func matches(l *entity.Listing, f BrowseFilters) bool {
	// A listing without a platform is never excluded by platform filters.
	if len(f.PlatformIDs) > 0 && l.PlatformID != "" {
		found := false
		for _, id := range f.PlatformIDs {
			if l.PlatformID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.OnlineOnly && !l.Seller.IsOnline {
		return false
	}
	// Auto-Delivery is instant-capable for listing validation, but the
	// instant filter is a strict match on the Instant type.
	if f.InstantOnly && l.DeliveryType != entity.DeliveryInstant {
		return false
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}

	for fieldID, ff := range f.Fields {
		if !fieldMatches(l.CustomValues[fieldID], ff) {
			return false
		}
	}
	return true
}

func fieldMatches(raw interface{}, ff FieldFilter) bool {
	// "All" is the select control's no-choice sentinel.
	if ff.Value != "" && ff.Value != "All" {
		s, ok := raw.(string)
		if !ok || s != ff.Value {
			return false
		}
	}
	if ff.Min != nil || ff.Max != nil {
		// A missing or non-numeric value fails any active bound.
		n, ok := toNumber(raw)
		if !ok {
			return false
		}
		if ff.Min != nil && n < *ff.Min {
			return false
		}
		if ff.Max != nil && n > *ff.Max {
			return false
		}
	}
	return true
}

func toNumber(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// FilterSchema describes the filter controls a category page should render:
// the pair config's filterable listing fields. Select controls offer the
// field's options plus an implicit "all" state handled client-side.
func (uc *BrowseUseCase) FilterSchema(ctx context.Context, gameID, categoryID string) ([]entity.CustomField, error) {
	game, err := uc.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return game.Config(categoryID).FilterableFields(), nil
}
