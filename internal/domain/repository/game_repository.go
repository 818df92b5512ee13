package repository

import (
	"context"

	"nexusmarket/internal/domain/entity"
)

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Game, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Game, int64, error)
	Update(ctx context.Context, game *entity.Game) error

	// UpdateWithListingSync writes the game and rewrites every listing whose
	// variant reference resolves against the new config, in one transaction.
	// Either the game and all qualifying listings commit together or nothing
	// does. Returns the number of listings updated.
	UpdateWithListingSync(ctx context.Context, game *entity.Game) (int, error)

	SoftDelete(ctx context.Context, id string) error
}
