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

type OrderRepository struct {
	mu       sync.RWMutex
	orders   []*entity.Order
	messages map[string][]*entity.ChatMessage
	listings *ListingRepository
}

func NewOrderRepository(listings *ListingRepository) *OrderRepository {
	return &OrderRepository{
		messages: make(map[string][]*entity.ChatMessage),
		listings: listings,
	}
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

// Create takes both locks so the stock decrement and the order insert are
// observed together, matching the Firestore transaction.
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings.mu.Lock()
	defer r.listings.mu.Unlock()

	var listing *entity.Listing
	for _, l := range r.listings.all() {
		if l.ID == order.ListingID && l.DeletedAt == nil {
			listing = l
			break
		}
	}
	if listing == nil {
		return errors.NotFound("Listing", nil)
	}
	if listing.Stock < order.Quantity {
		return errors.Conflict("Insufficient stock")
	}

	now := time.Now()
	listing.Stock -= order.Quantity
	if listing.Stock == 0 {
		listing.Status = entity.ListingStatusSoldOut
	}
	listing.UpdatedAt = now

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	stored := *order
	r.orders = append(r.orders, &stored)
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			c := *o
			return &c, nil
		}
	}
	return nil, errors.NotFound("Order", nil)
}

func (r *OrderRepository) ListByBuyerID(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, int64, error) {
	return r.List(ctx, map[string]interface{}{"buyerId": buyerID}, limit, offset)
}

func (r *OrderRepository) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Order, int64, error) {
	return r.List(ctx, map[string]interface{}{"sellerId": sellerID}, limit, offset)
}

func (r *OrderRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Order
	for _, o := range r.orders {
		if buyer, ok := filter["buyerId"]; ok && o.BuyerID != buyer {
			continue
		}
		if seller, ok := filter["sellerId"]; ok && o.SellerID != seller {
			continue
		}
		if status, ok := filter["status"]; ok && string(o.Status) != status {
			continue
		}
		c := *o
		out = append(out, &c)
	}

	total := int64(len(out))
	return paginate(out, limit, offset), total, nil
}

func (r *OrderRepository) Update(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID == order.ID {
			order.UpdatedAt = time.Now()
			stored := *order
			r.orders[i] = &stored
			return nil
		}
	}
	return errors.NotFound("Order", nil)
}

func (r *OrderRepository) AppendMessage(ctx context.Context, orderID string, message *entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	stored := *message
	r.messages[orderID] = append(r.messages[orderID], &stored)
	return nil
}

func (r *OrderRepository) ListMessages(ctx context.Context, orderID string) ([]*entity.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.ChatMessage
	for _, m := range r.messages[orderID] {
		c := *m
		out = append(out, &c)
	}
	return out, nil
}
