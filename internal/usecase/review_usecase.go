package usecase

import (
	"context"
	"time"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

// ReviewUseCase gates seller feedback behind completed orders.
type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	orderRepo  repository.OrderRepository
	userRepo   repository.UserRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
		userRepo:   userRepo,
	}
}

type CreateReviewInput struct {
	OrderID string `json:"order_id" validate:"required"`
	Rating  string `json:"rating" validate:"required"`
	Text    string `json:"text" validate:"max=2000"`
}

// CreateReview accepts feedback from the buyer of a completed order. The
// review carries an author snapshot and the item name so the seller page
// renders without joins.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, authorID string, input CreateReviewInput) (*entity.Review, error) {
	if input.Rating != entity.ReviewPositive && input.Rating != entity.ReviewNegative {
		return nil, errors.BadRequest("Rating must be Positive or Negative", nil)
	}

	order, err := uc.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != authorID {
		return nil, errors.Forbidden("Only the buyer can review this order", nil)
	}
	if order.Status != entity.OrderCompleted {
		return nil, errors.Conflict("Only completed orders can be reviewed")
	}

	author, err := uc.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	review := &entity.Review{
		SellerID:  order.SellerID,
		OrderID:   order.ID,
		AuthorID:  authorID,
		Author:    author.Username,
		Rating:    input.Rating,
		Text:      input.Text,
		ItemName:  order.Listing.Title,
		Status:    entity.ReviewStatusApproved,
		CreatedAt: time.Now(),
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	uc.updateReputation(ctx, order.SellerID)
	return review, nil
}

// updateReputation recomputes the seller's positive-feedback ratio from their
// approved reviews. Best effort: a failed recompute never fails the review.
func (uc *ReviewUseCase) updateReputation(ctx context.Context, sellerID string) {
	reviews, _, err := uc.reviewRepo.ListBySellerID(ctx, sellerID, 0, 0)
	if err != nil {
		return
	}

	var total, positive int
	for _, r := range reviews {
		if r.Status != entity.ReviewStatusApproved {
			continue
		}
		total++
		if r.Rating == entity.ReviewPositive {
			positive++
		}
	}
	if total == 0 {
		return
	}

	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return
	}
	seller.Reputation = float64(positive) / float64(total) * 100
	seller.UpdatedAt = time.Now()
	_ = uc.userRepo.Update(ctx, seller)
}

func (uc *ReviewUseCase) ListSellerReviews(ctx context.Context, sellerID string, page, limit int) ([]*entity.Review, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return uc.reviewRepo.ListBySellerID(ctx, sellerID, limit, offset)
}

// FlagReview pulls a review out of the approved set for moderation.
// Admin only, enforced upstream.
func (uc *ReviewUseCase) FlagReview(ctx context.Context, reviewID string) (*entity.Review, error) {
	return uc.setStatus(ctx, reviewID, entity.ReviewStatusFlagged)
}

// ApproveReview restores a flagged review.
func (uc *ReviewUseCase) ApproveReview(ctx context.Context, reviewID string) (*entity.Review, error) {
	return uc.setStatus(ctx, reviewID, entity.ReviewStatusApproved)
}

func (uc *ReviewUseCase) setStatus(ctx context.Context, reviewID, status string) (*entity.Review, error) {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	review.Status = status
	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	uc.updateReputation(ctx, review.SellerID)
	return review, nil
}
