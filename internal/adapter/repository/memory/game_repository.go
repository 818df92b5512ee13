package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
	"nexusmarket/pkg/logger"
)

type GameRepository struct {
	mu       sync.RWMutex
	games    map[string]*entity.Game
	listings *ListingRepository
}

// NewGameRepository builds a game repository; listings may be nil when the
// caller never saves games with variant sync.
func NewGameRepository(listings *ListingRepository) *GameRepository {
	return &GameRepository{
		games:    make(map[string]*entity.Game),
		listings: listings,
	}
}

var _ repository.GameRepository = (*GameRepository)(nil)

func (r *GameRepository) Create(ctx context.Context, game *entity.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	now := time.Now()
	if game.CreatedAt.IsZero() {
		game.CreatedAt = now
	}
	game.UpdatedAt = now

	stored := *game
	r.games[game.ID] = &stored
	return nil
}

func (r *GameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.games[id]
	if !ok || game.DeletedAt != nil {
		return nil, errors.NotFound("Game", nil)
	}
	c := *game
	return &c, nil
}

func (r *GameRepository) GetBySlug(ctx context.Context, slug string) (*entity.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, game := range r.games {
		if game.Slug == slug && game.DeletedAt == nil {
			c := *game
			return &c, nil
		}
	}
	return nil, errors.NotFound("Game", nil)
}

func (r *GameRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Game, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Game
	for _, game := range r.games {
		if game.DeletedAt != nil {
			continue
		}
		if status, ok := filter["status"]; ok && game.Status != status {
			continue
		}
		c := *game
		out = append(out, &c)
	}

	total := int64(len(out))
	return paginate(out, limit, offset), total, nil
}

func (r *GameRepository) Update(ctx context.Context, game *entity.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[game.ID]; !ok {
		return errors.NotFound("Game", nil)
	}
	game.UpdatedAt = time.Now()
	stored := *game
	r.games[game.ID] = &stored
	return nil
}

// UpdateWithListingSync mirrors the Firestore transaction: the game write
// and every qualifying listing rewrite happen under both locks, so readers
// observe either the old state or the fully cascaded one.
func (r *GameRepository) UpdateWithListingSync(ctx context.Context, game *entity.Game) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[game.ID]; !ok {
		return 0, errors.NotFound("Game", nil)
	}

	game.UpdatedAt = time.Now()

	updated := 0
	if r.listings != nil {
		r.listings.mu.Lock()
		defer r.listings.mu.Unlock()

		for _, listing := range r.listings.all() {
			if listing.DeletedAt != nil || listing.GameID != game.ID || listing.VariantID == "" {
				continue
			}
			if entity.SyncListingWithVariant(game, listing) {
				listing.UpdatedAt = game.UpdatedAt
				updated++
			} else {
				logger.Warn("Listing %s references missing variant %s of game %s", listing.ID, listing.VariantID, game.ID)
			}
		}
	}

	stored := *game
	r.games[game.ID] = &stored
	return updated, nil
}

func (r *GameRepository) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	game, ok := r.games[id]
	if !ok || game.DeletedAt != nil {
		return errors.NotFound("Game", nil)
	}
	now := time.Now()
	game.DeletedAt = &now
	game.UpdatedAt = now
	return nil
}
