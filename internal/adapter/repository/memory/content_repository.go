package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

type BannerRepository struct {
	mu      sync.RWMutex
	banners map[string]*entity.Banner
}

func NewBannerRepository() *BannerRepository {
	return &BannerRepository{
		banners: make(map[string]*entity.Banner),
	}
}

var _ repository.BannerRepository = (*BannerRepository)(nil)

func (r *BannerRepository) Create(ctx context.Context, banner *entity.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if banner.ID == "" {
		banner.ID = uuid.New().String()
	}
	now := time.Now()
	if banner.CreatedAt.IsZero() {
		banner.CreatedAt = now
	}
	banner.UpdatedAt = now

	stored := *banner
	r.banners[banner.ID] = &stored
	return nil
}

func (r *BannerRepository) GetByID(ctx context.Context, id string) (*entity.Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	banner, ok := r.banners[id]
	if !ok {
		return nil, errors.NotFound("Banner", nil)
	}
	c := *banner
	return &c, nil
}

func (r *BannerRepository) List(ctx context.Context) ([]*entity.Banner, error) {
	return r.list(false), nil
}

func (r *BannerRepository) ListActive(ctx context.Context) ([]*entity.Banner, error) {
	return r.list(true), nil
}

func (r *BannerRepository) list(activeOnly bool) []*entity.Banner {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Banner
	for _, banner := range r.banners {
		if activeOnly && !banner.Active {
			continue
		}
		c := *banner
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (r *BannerRepository) Update(ctx context.Context, banner *entity.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.banners[banner.ID]; !ok {
		return errors.NotFound("Banner", nil)
	}
	banner.UpdatedAt = time.Now()
	stored := *banner
	r.banners[banner.ID] = &stored
	return nil
}

func (r *BannerRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.banners[id]; !ok {
		return errors.NotFound("Banner", nil)
	}
	delete(r.banners, id)
	return nil
}

type MediaRepository struct {
	mu    sync.RWMutex
	items []*entity.MediaItem
}

func NewMediaRepository() *MediaRepository {
	return &MediaRepository{}
}

var _ repository.MediaRepository = (*MediaRepository)(nil)

func (r *MediaRepository) Create(ctx context.Context, item *entity.MediaItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	stored := *item
	r.items = append(r.items, &stored)
	return nil
}

func (r *MediaRepository) GetByID(ctx context.Context, id string) (*entity.MediaItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == id {
			c := *item
			return &c, nil
		}
	}
	return nil, errors.NotFound("Media item", nil)
}

func (r *MediaRepository) List(ctx context.Context, limit, offset int) ([]*entity.MediaItem, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.MediaItem, 0, len(r.items))
	for _, item := range r.items {
		c := *item
		out = append(out, &c)
	}

	total := int64(len(out))
	return paginate(out, limit, offset), total, nil
}

func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Media item", nil)
}
