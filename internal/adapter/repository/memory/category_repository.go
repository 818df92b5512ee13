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

type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*entity.Category
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{
		categories: make(map[string]*entity.Category),
	}
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now

	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, errors.NotFound("Category", nil)
	}
	c := *category
	return &c, nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, category := range r.categories {
		if category.Slug == slug {
			c := *category
			return &c, nil
		}
	}
	return nil, errors.NotFound("Category", nil)
}

func (r *CategoryRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Category, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Category
	for _, category := range r.categories {
		if active, ok := filter["isActive"]; ok && category.IsActive != active {
			continue
		}
		c := *category
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	total := int64(len(out))
	return paginate(out, limit, offset), total, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[category.ID]; !ok {
		return errors.NotFound("Category", nil)
	}
	category.UpdatedAt = time.Now()
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return errors.NotFound("Category", nil)
	}
	delete(r.categories, id)
	return nil
}

type PlatformRepository struct {
	mu        sync.RWMutex
	platforms []*entity.Platform
	groups    map[string]*entity.PlatformGroup
}

func NewPlatformRepository() *PlatformRepository {
	return &PlatformRepository{
		groups: make(map[string]*entity.PlatformGroup),
	}
}

var _ repository.PlatformRepository = (*PlatformRepository)(nil)

func (r *PlatformRepository) CreatePlatform(ctx context.Context, platform *entity.Platform) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if platform.ID == "" {
		platform.ID = uuid.New().String()
	}
	stored := *platform
	r.platforms = append(r.platforms, &stored)
	return nil
}

func (r *PlatformRepository) ListPlatforms(ctx context.Context) ([]*entity.Platform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Platform, 0, len(r.platforms))
	for _, p := range r.platforms {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r *PlatformRepository) CreateGroup(ctx context.Context, group *entity.PlatformGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	stored := *group
	r.groups[group.ID] = &stored
	return nil
}

func (r *PlatformRepository) GetGroup(ctx context.Context, id string) (*entity.PlatformGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	group, ok := r.groups[id]
	if !ok {
		return nil, errors.NotFound("Platform group", nil)
	}
	c := *group
	return &c, nil
}

func (r *PlatformRepository) ListGroups(ctx context.Context) ([]*entity.PlatformGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.PlatformGroup
	for _, group := range r.groups {
		c := *group
		out = append(out, &c)
	}
	return out, nil
}
