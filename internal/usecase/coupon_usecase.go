package usecase

import (
	"context"
	"strings"
	"time"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

// CouponUseCase manages admin-issued discount codes.
type CouponUseCase struct {
	couponRepo repository.CouponRepository
}

func NewCouponUseCase(couponRepo repository.CouponRepository) *CouponUseCase {
	return &CouponUseCase{couponRepo: couponRepo}
}

type SaveCouponInput struct {
	Code     string
	Discount float64
	Type     string
	MaxUses  int
	Status   string
}

func (uc *CouponUseCase) CreateCoupon(ctx context.Context, input SaveCouponInput) (*entity.Coupon, error) {
	if input.Code == "" {
		return nil, errors.BadRequest("Coupon code must not be empty", nil)
	}
	if input.Type != entity.CouponPercentage && input.Type != entity.CouponFixed {
		return nil, errors.BadRequest("Unknown coupon type: "+input.Type, nil)
	}
	if input.Discount <= 0 {
		return nil, errors.BadRequest("Discount must be greater than zero", nil)
	}
	if input.Type == entity.CouponPercentage && input.Discount > 100 {
		return nil, errors.BadRequest("Percentage discount cannot exceed 100", nil)
	}

	code := strings.ToUpper(input.Code)
	if existing, err := uc.couponRepo.GetByCode(ctx, code); err == nil && existing != nil {
		return nil, errors.Conflict("Coupon code already exists")
	}

	status := input.Status
	if status == "" {
		status = entity.CouponStatusActive
	}

	coupon := &entity.Coupon{
		Code:      code,
		Discount:  input.Discount,
		Type:      input.Type,
		MaxUses:   input.MaxUses,
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uc.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (uc *CouponUseCase) ListCoupons(ctx context.Context, page, limit int) ([]*entity.Coupon, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return uc.couponRepo.List(ctx, limit, offset)
}

// Validate checks a code without consuming a use, for pre-checkout preview.
func (uc *CouponUseCase) Validate(ctx context.Context, code string) (*entity.Coupon, error) {
	coupon, err := uc.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon.Status != entity.CouponStatusActive {
		return nil, errors.Conflict("Coupon is no longer active")
	}
	if coupon.MaxUses > 0 && coupon.Uses >= coupon.MaxUses {
		return nil, errors.Conflict("Coupon has been fully redeemed")
	}
	return coupon, nil
}

func (uc *CouponUseCase) UpdateStatus(ctx context.Context, code, status string) (*entity.Coupon, error) {
	if status != entity.CouponStatusActive && status != entity.CouponStatusExpired {
		return nil, errors.BadRequest("Unknown coupon status: "+status, nil)
	}

	coupon, err := uc.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	coupon.Status = status
	if err := uc.couponRepo.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (uc *CouponUseCase) DeleteCoupon(ctx context.Context, id string) error {
	return uc.couponRepo.Delete(ctx, id)
}
