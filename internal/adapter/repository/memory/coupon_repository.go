package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

type CouponRepository struct {
	mu      sync.Mutex
	coupons []*entity.Coupon
}

func NewCouponRepository() *CouponRepository {
	return &CouponRepository{}
}

var _ repository.CouponRepository = (*CouponRepository)(nil)

func (r *CouponRepository) Create(ctx context.Context, coupon *entity.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	coupon.Code = strings.ToUpper(coupon.Code)
	now := time.Now()
	if coupon.CreatedAt.IsZero() {
		coupon.CreatedAt = now
	}
	coupon.UpdatedAt = now

	stored := *coupon
	r.coupons = append(r.coupons, &stored)
	return nil
}

func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	coupon := r.find(code)
	if coupon == nil {
		return nil, errors.NotFound("Coupon", nil)
	}
	c := *coupon
	return &c, nil
}

func (r *CouponRepository) List(ctx context.Context, limit, offset int) ([]*entity.Coupon, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Coupon, 0, len(r.coupons))
	for _, coupon := range r.coupons {
		c := *coupon
		out = append(out, &c)
	}

	total := int64(len(out))
	return paginate(out, limit, offset), total, nil
}

func (r *CouponRepository) Update(ctx context.Context, coupon *entity.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.coupons {
		if existing.ID == coupon.ID {
			coupon.UpdatedAt = time.Now()
			stored := *coupon
			r.coupons[i] = &stored
			return nil
		}
	}
	return errors.NotFound("Coupon", nil)
}

func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, coupon := range r.coupons {
		if coupon.ID == id {
			r.coupons = append(r.coupons[:i], r.coupons[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Coupon", nil)
}

func (r *CouponRepository) Redeem(ctx context.Context, code string) (*entity.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	coupon := r.find(code)
	if coupon == nil {
		return nil, errors.NotFound("Coupon", nil)
	}
	if coupon.Status != entity.CouponStatusActive {
		return nil, errors.Conflict("Coupon is no longer active")
	}
	if coupon.MaxUses > 0 && coupon.Uses >= coupon.MaxUses {
		return nil, errors.Conflict("Coupon has been fully redeemed")
	}

	coupon.Uses++
	if coupon.MaxUses > 0 && coupon.Uses >= coupon.MaxUses {
		coupon.Status = entity.CouponStatusExpired
	}
	coupon.UpdatedAt = time.Now()

	c := *coupon
	return &c, nil
}

func (r *CouponRepository) Release(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	coupon := r.find(code)
	if coupon == nil {
		return errors.NotFound("Coupon", nil)
	}

	if coupon.Uses > 0 {
		coupon.Uses--
	}
	if coupon.Status == entity.CouponStatusExpired && (coupon.MaxUses == 0 || coupon.Uses < coupon.MaxUses) {
		coupon.Status = entity.CouponStatusActive
	}
	coupon.UpdatedAt = time.Now()
	return nil
}

func (r *CouponRepository) find(code string) *entity.Coupon {
	code = strings.ToUpper(code)
	for _, coupon := range r.coupons {
		if coupon.Code == code {
			return coupon
		}
	}
	return nil
}
