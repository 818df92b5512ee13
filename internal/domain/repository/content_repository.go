package repository

import (
	"context"

	"nexusmarket/internal/domain/entity"
)

type BannerRepository interface {
	Create(ctx context.Context, banner *entity.Banner) error
	GetByID(ctx context.Context, id string) (*entity.Banner, error)
	List(ctx context.Context) ([]*entity.Banner, error)
	ListActive(ctx context.Context) ([]*entity.Banner, error)
	Update(ctx context.Context, banner *entity.Banner) error
	Delete(ctx context.Context, id string) error
}

type MediaRepository interface {
	Create(ctx context.Context, item *entity.MediaItem) error
	GetByID(ctx context.Context, id string) (*entity.MediaItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.MediaItem, int64, error)
	Delete(ctx context.Context, id string) error
}
