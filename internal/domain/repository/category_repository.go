package repository

import (
	"context"

	"nexusmarket/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Category, int64, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}

type PlatformRepository interface {
	CreatePlatform(ctx context.Context, platform *entity.Platform) error
	ListPlatforms(ctx context.Context) ([]*entity.Platform, error)
	CreateGroup(ctx context.Context, group *entity.PlatformGroup) error
	GetGroup(ctx context.Context, id string) (*entity.PlatformGroup, error)
	ListGroups(ctx context.Context) ([]*entity.PlatformGroup, error)
}
