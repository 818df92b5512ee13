package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

// ListingUseCase creates and maintains seller offers. Every write is
// validated against the owning game+category config: custom fields, delivery
// options, and the variant path for grouped categories.
type ListingUseCase struct {
	listingRepo  repository.ListingRepository
	gameRepo     repository.GameRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	gameRepo repository.GameRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo:  listingRepo,
		gameRepo:     gameRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

type SaveListingInput struct {
	GameID      string
	CategoryID  string
	Title       string
	Description string
	Image       string
	Price       float64
	Unit        string
	Stock       int
	MinQty      int

	DeliveryType string
	DeliveryTime string

	PlatformID string
	Region     string
	Tags       []string

	CustomValues map[string]interface{}
	VariantID    string
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, sellerID string, input SaveListingInput) (*entity.Listing, error) {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if seller.Status != entity.UserStatusActive {
		return nil, errors.Forbidden("Account is not allowed to sell", nil)
	}

	game, err := uc.gameRepo.GetByID(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	if !game.HasCategory(input.CategoryID) {
		return nil, errors.BadRequest("Game does not participate in this category", nil)
	}

	category, err := uc.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	cfg := game.Config(input.CategoryID)

	listing := &entity.Listing{
		GameID:       input.GameID,
		CategoryID:   input.CategoryID,
		Title:        input.Title,
		Description:  input.Description,
		Image:        input.Image,
		Price:        input.Price,
		Unit:         input.Unit,
		Stock:        input.Stock,
		MinQty:       input.MinQty,
		SellerID:     sellerID,
		Seller:       seller.Snapshot(),
		DeliveryType: input.DeliveryType,
		DeliveryTime: input.DeliveryTime,
		PlatformID:   input.PlatformID,
		Region:       input.Region,
		Tags:         input.Tags,
		Status:       entity.ListingStatusActive,
		CustomValues: input.CustomValues,
		VariantID:    input.VariantID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if listing.MinQty <= 0 {
		listing.MinQty = 1
	}
	if listing.Image == "" {
		listing.Image = game.Image
	}

	if err := uc.applyConfig(listing, game, category, cfg, input); err != nil {
		return nil, err
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// applyConfig enforces the pair config on a listing write. For grouped
// gift-card categories with predefined variants the seller must pick a
// variant, and the listing's presentation fields come from its definition.
func (uc *ListingUseCase) applyConfig(
	listing *entity.Listing,
	game *entity.Game,
	category *entity.Category,
	cfg entity.CategoryConfig,
	input SaveListingInput,
) error {
	if !cfg.AllowsDelivery(input.DeliveryType) {
		return errors.BadRequest(fmt.Sprintf("Delivery type %q is not allowed for this category", input.DeliveryType), nil)
	}

	values, err := coerceCustomValues(cfg.ListingFields, input.CustomValues)
	if err != nil {
		return err
	}
	listing.CustomValues = values

	variantPath := category.Layout == entity.LayoutGroupedGiftCard && len(cfg.PredefinedVariants) > 0
	if variantPath {
		if input.VariantID == "" {
			return errors.BadRequest("A product variant must be selected for this category", nil)
		}
		variant := cfg.Variant(input.VariantID)
		if variant == nil {
			return errors.BadRequest("Unknown product variant", nil)
		}
		listing.Title = variant.Name
		if variant.Image != "" {
			listing.Image = variant.Image
		} else {
			listing.Image = game.Image
		}
		if variant.Subtitle != "" {
			listing.Unit = variant.Subtitle
		} else if listing.Unit == "" {
			listing.Unit = "Unit"
		}
	} else {
		listing.VariantID = ""
		if listing.Title == "" {
			return errors.BadRequest("Title is required", nil)
		}
	}

	if listing.Price <= 0 {
		return errors.BadRequest("Price must be greater than zero", nil)
	}
	if listing.Stock < 0 {
		return errors.BadRequest("Stock must not be negative", nil)
	}
	return nil
}

// coerceCustomValues validates the seller's answers against the field
// definitions: required fields must be present, number fields must parse,
// select fields must use a configured option. Unknown keys are dropped.
func coerceCustomValues(fields []entity.CustomField, raw map[string]interface{}) (map[string]interface{}, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	out := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		value, present := raw[field.ID]
		if !present || value == nil || value == "" {
			if field.Required {
				return nil, errors.BadRequest(fmt.Sprintf("Field %q is required", field.Label), nil)
			}
			continue
		}

		switch field.Type {
		case entity.FieldNumber:
			n, ok := asNumber(value)
			if !ok {
				return nil, errors.BadRequest(fmt.Sprintf("Field %q must be a number", field.Label), nil)
			}
			out[field.ID] = n
		case entity.FieldSelect:
			s, ok := value.(string)
			if !ok {
				return nil, errors.BadRequest(fmt.Sprintf("Field %q must be one of the configured options", field.Label), nil)
			}
			valid := false
			for _, opt := range field.Options {
				if opt == s {
					valid = true
					break
				}
			}
			if !valid {
				return nil, errors.BadRequest(fmt.Sprintf("Field %q must be one of the configured options", field.Label), nil)
			}
			out[field.ID] = s
		default:
			out[field.ID] = fmt.Sprintf("%v", value)
		}
	}

	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
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

func (uc *ListingUseCase) GetListing(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, id)
}

// UpdateListing re-runs the full config validation, so an offer created under
// an older config must conform to the current one before it can be saved.
func (uc *ListingUseCase) UpdateListing(ctx context.Context, sellerID, id string, input SaveListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != sellerID {
		return nil, errors.Forbidden("You can only modify your own listings", nil)
	}

	game, err := uc.gameRepo.GetByID(ctx, listing.GameID)
	if err != nil {
		return nil, err
	}
	category, err := uc.categoryRepo.GetByID(ctx, listing.CategoryID)
	if err != nil {
		return nil, err
	}
	cfg := game.Config(listing.CategoryID)

	listing.Title = input.Title
	listing.Description = input.Description
	listing.Image = input.Image
	listing.Price = input.Price
	listing.Unit = input.Unit
	listing.Stock = input.Stock
	listing.MinQty = input.MinQty
	listing.DeliveryType = input.DeliveryType
	listing.DeliveryTime = input.DeliveryTime
	listing.PlatformID = input.PlatformID
	listing.Region = input.Region
	listing.Tags = input.Tags
	listing.VariantID = input.VariantID
	listing.UpdatedAt = time.Now()
	if listing.MinQty <= 0 {
		listing.MinQty = 1
	}
	if listing.Image == "" {
		listing.Image = game.Image
	}
	if listing.Stock > 0 && listing.Status == entity.ListingStatusSoldOut {
		listing.Status = entity.ListingStatusActive
	}

	if err := uc.applyConfig(listing, game, category, cfg, input); err != nil {
		return nil, err
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (uc *ListingUseCase) DeleteListing(ctx context.Context, sellerID, id string) error {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if listing.SellerID != sellerID {
		return errors.Forbidden("You can only delete your own listings", nil)
	}
	return uc.listingRepo.SoftDelete(ctx, id)
}

func (uc *ListingUseCase) ListSellerListings(ctx context.Context, sellerID, status string, page, limit int) ([]*entity.Listing, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return uc.listingRepo.ListBySellerID(ctx, sellerID, status, limit, offset)
}
