package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

type ReviewRepository struct {
	mu      sync.RWMutex
	reviews []*entity.Review
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)

func (r *ReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	stored := *review
	r.reviews = append(r.reviews, &stored)
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, review := range r.reviews {
		if review.ID == id {
			c := *review
			return &c, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (r *ReviewRepository) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Review, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Review
	for _, review := range r.reviews {
		if review.SellerID != sellerID {
			continue
		}
		c := *review
		out = append(out, &c)
	}

	total := int64(len(out))
	return paginate(out, limit, offset), total, nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.reviews {
		if existing.ID == review.ID {
			stored := *review
			r.reviews[i] = &stored
			return nil
		}
	}
	return errors.NotFound("Review", nil)
}
