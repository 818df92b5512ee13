package repository

import (
	"context"

	"nexusmarket/internal/domain/entity"
)

type OrderRepository interface {
	// Create persists the order and decrements the listing's stock in one
	// transaction; the listing flips to Sold Out when stock reaches zero.
	// Fails with a conflict when stock is insufficient at commit time.
	Create(ctx context.Context, order *entity.Order) error

	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByBuyerID(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Order, int64, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Order, int64, error)
	Update(ctx context.Context, order *entity.Order) error

	AppendMessage(ctx context.Context, orderID string, message *entity.ChatMessage) error
	ListMessages(ctx context.Context, orderID string) ([]*entity.ChatMessage, error)
}
