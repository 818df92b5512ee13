package repository

import (
	"context"

	"nexusmarket/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)

	// ListByGameCategory returns every active, non-deleted listing of the
	// game+category pair. Custom-field predicates are evaluated in the
	// browse usecase, so the full pair set is returned.
	ListByGameCategory(ctx context.Context, gameID, categoryID string) ([]*entity.Listing, error)

	ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Listing, int64, error)
	Update(ctx context.Context, listing *entity.Listing) error
	SoftDelete(ctx context.Context, id string) error
}
