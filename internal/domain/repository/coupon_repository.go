package repository

import (
	"context"

	"nexusmarket/internal/domain/entity"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	GetByCode(ctx context.Context, code string) (*entity.Coupon, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Coupon, int64, error)
	Update(ctx context.Context, coupon *entity.Coupon) error
	Delete(ctx context.Context, id string) error

	// Redeem increments the coupon's use count behind a max-uses guard in a
	// transaction and returns the redeemed coupon. Exhausted or inactive
	// coupons fail with a conflict.
	Redeem(ctx context.Context, code string) (*entity.Coupon, error)

	// Release returns one use to the coupon, undoing a Redeem whose order
	// never materialized. Reactivates a coupon that expired by exhaustion.
	Release(ctx context.Context, code string) error
}
