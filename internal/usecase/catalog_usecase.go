package usecase

import (
	"context"
	"strings"
	"time"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
	"nexusmarket/pkg/logger"
)

// CatalogUseCase owns the game/category registry and the per-pair category
// configs, and runs the variant cascade when an existing game is saved.
type CatalogUseCase struct {
	gameRepo     repository.GameRepository
	categoryRepo repository.CategoryRepository
	platformRepo repository.PlatformRepository
}

func NewCatalogUseCase(
	gameRepo repository.GameRepository,
	categoryRepo repository.CategoryRepository,
	platformRepo repository.PlatformRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		gameRepo:     gameRepo,
		categoryRepo: categoryRepo,
		platformRepo: platformRepo,
	}
}

type SaveGameInput struct {
	Name            string
	Image           string
	DetailImage     string
	CategoryIDs     []string
	PlatformGroupID string
	SEO             *entity.SEOSettings
	CategoryConfigs map[string]entity.CategoryConfig
	Status          string
}

func (uc *CatalogUseCase) CreateGame(ctx context.Context, input SaveGameInput) (*entity.Game, error) {
	slug := strings.ToLower(strings.ReplaceAll(input.Name, " ", "-"))

	existing, err := uc.gameRepo.GetBySlug(ctx, slug)
	if err == nil && existing != nil {
		return nil, errors.Conflict("Game with this name already exists")
	}

	if err := uc.validateConfigs(input.CategoryIDs, input.CategoryConfigs); err != nil {
		return nil, err
	}

	game := &entity.Game{
		Name:            input.Name,
		Slug:            slug,
		Image:           input.Image,
		DetailImage:     input.DetailImage,
		CategoryIDs:     input.CategoryIDs,
		PlatformGroupID: input.PlatformGroupID,
		SEO:             input.SEO,
		CategoryConfigs: input.CategoryConfigs,
		Status:          input.Status,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if game.CategoryConfigs == nil {
		game.CategoryConfigs = map[string]entity.CategoryConfig{}
	}

	if err := uc.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// UpdateGame saves an existing game and cascades variant changes into every
// listing that references one of the saved configs' variants. The game write
// and all listing rewrites are atomic; listings whose variant disappeared
// are left as orphans.
func (uc *CatalogUseCase) UpdateGame(ctx context.Context, id string, input SaveGameInput) (*entity.Game, error) {
	game, err := uc.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.validateConfigs(input.CategoryIDs, input.CategoryConfigs); err != nil {
		return nil, err
	}

	game.Name = input.Name
	game.Image = input.Image
	game.DetailImage = input.DetailImage
	game.CategoryIDs = input.CategoryIDs
	game.PlatformGroupID = input.PlatformGroupID
	game.SEO = input.SEO
	game.Status = input.Status
	game.CategoryConfigs = input.CategoryConfigs
	if game.CategoryConfigs == nil {
		game.CategoryConfigs = map[string]entity.CategoryConfig{}
	}
	game.UpdatedAt = time.Now()

	synced, err := uc.gameRepo.UpdateWithListingSync(ctx, game)
	if err != nil {
		return nil, err
	}
	if synced > 0 {
		logger.Info("Game %s saved, %d linked listings synced", game.ID, synced)
	}

	return game, nil
}

func (uc *CatalogUseCase) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	return uc.gameRepo.GetByID(ctx, id)
}

func (uc *CatalogUseCase) GetGameBySlug(ctx context.Context, slug string) (*entity.Game, error) {
	return uc.gameRepo.GetBySlug(ctx, slug)
}

func (uc *CatalogUseCase) ListGames(ctx context.Context, status string, page, limit int) ([]*entity.Game, int64, error) {
	filter := make(map[string]interface{})
	if status == "" {
		status = "active"
	}
	filter["status"] = status

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.gameRepo.List(ctx, filter, limit, offset)
}

func (uc *CatalogUseCase) DeleteGame(ctx context.Context, id string) error {
	if _, err := uc.gameRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.gameRepo.SoftDelete(ctx, id)
}

// Config returns the category config for a game+category pair. An absent
// config is not an error: callers get the permissive default (no custom
// fields, both delivery types, no variants).
func (uc *CatalogUseCase) Config(ctx context.Context, gameID, categoryID string) (entity.CategoryConfig, error) {
	game, err := uc.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return entity.CategoryConfig{}, err
	}
	return game.Config(categoryID), nil
}

// SetConfig replaces one pair's config and runs the same cascade as a full
// game save, since the replaced config may rename or drop variants.
func (uc *CatalogUseCase) SetConfig(ctx context.Context, gameID, categoryID string, cfg entity.CategoryConfig) (*entity.Game, error) {
	game, err := uc.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if !game.HasCategory(categoryID) {
		return nil, errors.Conflict("Game does not participate in this category")
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	if game.CategoryConfigs == nil {
		game.CategoryConfigs = map[string]entity.CategoryConfig{}
	}
	game.CategoryConfigs[categoryID] = cfg

	if _, err := uc.gameRepo.UpdateWithListingSync(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (uc *CatalogUseCase) validateConfigs(categoryIDs []string, configs map[string]entity.CategoryConfig) error {
	for categoryID, cfg := range configs {
		found := false
		for _, id := range categoryIDs {
			if id == categoryID {
				found = true
				break
			}
		}
		if !found {
			return errors.Conflict("Config references category the game does not participate in")
		}
		if err := validateConfig(cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateConfig(cfg entity.CategoryConfig) error {
	seenFields := make(map[string]bool)
	for _, f := range append(append([]entity.CustomField{}, cfg.ListingFields...), cfg.BuyerFields...) {
		if f.ID == "" {
			return errors.Validation("Custom field id must not be empty", nil)
		}
	}
	for _, f := range cfg.ListingFields {
		if seenFields[f.ID] {
			return errors.Conflict("Duplicate listing field id: " + f.ID)
		}
		seenFields[f.ID] = true
	}
	seenBuyer := make(map[string]bool)
	for _, f := range cfg.BuyerFields {
		if seenBuyer[f.ID] {
			return errors.Conflict("Duplicate buyer field id: " + f.ID)
		}
		seenBuyer[f.ID] = true
	}

	seenVariants := make(map[string]bool)
	for _, v := range cfg.PredefinedVariants {
		if v.ID == "" {
			return errors.Validation("Variant id must not be empty", nil)
		}
		if seenVariants[v.ID] {
			return errors.Conflict("Duplicate variant id: " + v.ID)
		}
		seenVariants[v.ID] = true
	}

	for _, opt := range cfg.DeliveryOptions {
		if opt != entity.DeliveryInstant && opt != entity.DeliveryManual {
			return errors.Validation("Unknown delivery option: "+opt, nil)
		}
	}
	return nil
}

// --- Categories ---

type SaveCategoryInput struct {
	Name     string
	Icon     string
	Layout   entity.CategoryLayout
	SEO      entity.SEOSettings
	IsActive bool
}

func (uc *CatalogUseCase) CreateCategory(ctx context.Context, input SaveCategoryInput) (*entity.Category, error) {
	slug := strings.ToLower(strings.ReplaceAll(input.Name, " ", "-"))

	existing, err := uc.categoryRepo.GetBySlug(ctx, slug)
	if err == nil && existing != nil {
		return nil, errors.Conflict("Category with this name already exists")
	}

	category := &entity.Category{
		Name:      input.Name,
		Slug:      slug,
		Icon:      input.Icon,
		Layout:    input.Layout,
		SEO:       input.SEO,
		IsActive:  input.IsActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, id string, input SaveCategoryInput) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Icon = input.Icon
	category.Layout = input.Layout
	category.SEO = input.SEO
	category.IsActive = input.IsActive
	category.UpdatedAt = time.Now()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (uc *CatalogUseCase) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	return uc.categoryRepo.GetByID(ctx, id)
}

func (uc *CatalogUseCase) ListCategories(ctx context.Context, activeOnly bool, page, limit int) ([]*entity.Category, int64, error) {
	filter := make(map[string]interface{})
	if activeOnly {
		filter["isActive"] = true
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.categoryRepo.List(ctx, filter, limit, offset)
}

func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.categoryRepo.Delete(ctx, id)
}

// --- Platforms ---

func (uc *CatalogUseCase) ListPlatforms(ctx context.Context) ([]*entity.Platform, error) {
	return uc.platformRepo.ListPlatforms(ctx)
}

func (uc *CatalogUseCase) ListPlatformGroups(ctx context.Context) ([]*entity.PlatformGroup, error) {
	return uc.platformRepo.ListGroups(ctx)
}

// GamePlatforms resolves the platforms a game's listings can target through
// its platform group. Games without a group have no platform constraint.
func (uc *CatalogUseCase) GamePlatforms(ctx context.Context, gameID string) ([]*entity.Platform, error) {
	game, err := uc.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.PlatformGroupID == "" {
		return nil, nil
	}

	group, err := uc.platformRepo.GetGroup(ctx, game.PlatformGroupID)
	if err != nil {
		return nil, err
	}

	platforms, err := uc.platformRepo.ListPlatforms(ctx)
	if err != nil {
		return nil, err
	}

	member := make(map[string]bool, len(group.PlatformIDs))
	for _, id := range group.PlatformIDs {
		member[id] = true
	}

	var out []*entity.Platform
	for _, p := range platforms {
		if member[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}
