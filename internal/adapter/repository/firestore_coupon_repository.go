package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

type firestoreCouponRepository struct {
	client *firestore.Client
}

func NewFirestoreCouponRepository(client *firestore.Client) repository.CouponRepository {
	return &firestoreCouponRepository{
		client: client,
	}
}

func (r *firestoreCouponRepository) Create(ctx context.Context, coupon *entity.Coupon) error {
	if coupon.ID == "" {
		coupon.ID = r.client.Collection("coupons").NewDoc().ID
	}
	coupon.Code = strings.ToUpper(coupon.Code)

	now := time.Now()
	if coupon.CreatedAt.IsZero() {
		coupon.CreatedAt = now
	}
	coupon.UpdatedAt = now

	_, err := r.client.Collection("coupons").Doc(coupon.ID).Set(ctx, coupon)
	if err != nil {
		return errors.Internal("Failed to create coupon", err)
	}

	return nil
}

func (r *firestoreCouponRepository) GetByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	query := r.client.Collection("coupons").Where("code", "==", strings.ToUpper(code)).Limit(1)
	doc, err := query.Documents(ctx).Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Coupon", nil)
		}
		return nil, errors.Internal("Failed to query coupon", err)
	}

	var coupon entity.Coupon
	if err := doc.DataTo(&coupon); err != nil {
		return nil, errors.Internal("Failed to parse coupon data", err)
	}

	return &coupon, nil
}

func (r *firestoreCouponRepository) List(ctx context.Context, limit, offset int) ([]*entity.Coupon, int64, error) {
	query := r.client.Collection("coupons").OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count coupons", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var coupons []*entity.Coupon

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate coupons", err)
		}

		var coupon entity.Coupon
		if err := doc.DataTo(&coupon); err != nil {
			return nil, 0, errors.Internal("Failed to parse coupon data", err)
		}
		coupons = append(coupons, &coupon)
	}

	return coupons, total, nil
}

func (r *firestoreCouponRepository) Update(ctx context.Context, coupon *entity.Coupon) error {
	coupon.UpdatedAt = time.Now()

	_, err := r.client.Collection("coupons").Doc(coupon.ID).Set(ctx, coupon)
	if err != nil {
		return errors.Internal("Failed to update coupon", err)
	}

	return nil
}

func (r *firestoreCouponRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("coupons").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete coupon", err)
	}

	return nil
}

// Redeem increments the use count behind the max-uses guard. The read and
// the guarded write share one transaction, so concurrent redemptions of the
// last use cannot both succeed.
func (r *firestoreCouponRepository) Redeem(ctx context.Context, code string) (*entity.Coupon, error) {
	query := r.client.Collection("coupons").Where("code", "==", strings.ToUpper(code)).Limit(1)

	var redeemed entity.Coupon
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(query).GetAll()
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return errors.NotFound("Coupon", nil)
		}

		var coupon entity.Coupon
		if err := docs[0].DataTo(&coupon); err != nil {
			return err
		}

		if coupon.Status != entity.CouponStatusActive {
			return errors.Conflict("Coupon is no longer active")
		}
		if coupon.MaxUses > 0 && coupon.Uses >= coupon.MaxUses {
			return errors.Conflict("Coupon has been fully redeemed")
		}

		coupon.Uses++
		if coupon.MaxUses > 0 && coupon.Uses >= coupon.MaxUses {
			coupon.Status = entity.CouponStatusExpired
		}
		coupon.UpdatedAt = time.Now()

		if err := tx.Set(docs[0].Ref, &coupon); err != nil {
			return err
		}
		redeemed = coupon
		return nil
	})
	if err != nil {
		if errors.Is(err, "CONFLICT") || errors.Is(err, "NOT_FOUND") || status.Code(err) == codes.NotFound {
			return nil, err
		}
		return nil, errors.Internal("Failed to redeem coupon", err)
	}

	return &redeemed, nil
}

// Release gives back one use, undoing a Redeem whose checkout failed after
// the coupon was already consumed.
func (r *firestoreCouponRepository) Release(ctx context.Context, code string) error {
	query := r.client.Collection("coupons").Where("code", "==", strings.ToUpper(code)).Limit(1)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(query).GetAll()
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return errors.NotFound("Coupon", nil)
		}

		var coupon entity.Coupon
		if err := docs[0].DataTo(&coupon); err != nil {
			return err
		}

		if coupon.Uses > 0 {
			coupon.Uses--
		}
		if coupon.Status == entity.CouponStatusExpired && (coupon.MaxUses == 0 || coupon.Uses < coupon.MaxUses) {
			coupon.Status = entity.CouponStatusActive
		}
		coupon.UpdatedAt = time.Now()

		return tx.Set(docs[0].Ref, &coupon)
	})
	if err != nil {
		if errors.Is(err, "NOT_FOUND") || status.Code(err) == codes.NotFound {
			return err
		}
		return errors.Internal("Failed to release coupon", err)
	}

	return nil
}
