// Package memory holds in-memory repository implementations used by tests
// and Firestore-less local runs. Entities are copied on the way in and out
// so callers never alias the stored values.
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

type ListingRepository struct {
	mu       sync.RWMutex
	listings []*entity.Listing
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{}
}

var _ repository.ListingRepository = (*ListingRepository)(nil)

func (r *ListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	now := time.Now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	stored := *listing
	r.listings = append(r.listings, &stored)
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.listings {
		if l.ID == id && l.DeletedAt == nil {
			c := *l
			return &c, nil
		}
	}
	return nil, errors.NotFound("Listing", nil)
}

func (r *ListingRepository) ListByGameCategory(ctx context.Context, gameID, categoryID string) ([]*entity.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Insertion order is the repository order the grouping relies on for
	// its stable tie-break.
	var out []*entity.Listing
	for _, l := range r.listings {
		if l.GameID == gameID && l.CategoryID == categoryID && l.DeletedAt == nil && l.Status == entity.ListingStatusActive {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *ListingRepository) ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entity.Listing
	for _, l := range r.listings {
		if l.SellerID != sellerID || l.DeletedAt != nil {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		c := *l
		matched = append(matched, &c)
	}

	total := int64(len(matched))
	return paginate(matched, limit, offset), total, nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, l := range r.listings {
		if l.ID == listing.ID {
			listing.UpdatedAt = time.Now()
			stored := *listing
			r.listings[i] = &stored
			return nil
		}
	}
	return errors.NotFound("Listing", nil)
}

func (r *ListingRepository) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.listings {
		if l.ID == id && l.DeletedAt == nil {
			now := time.Now()
			l.DeletedAt = &now
			l.UpdatedAt = now
			return nil
		}
	}
	return errors.NotFound("Listing", nil)
}

// all returns the live stored listings; callers must hold the lock.
func (r *ListingRepository) all() []*entity.Listing {
	return r.listings
}

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
