package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

// Create persists the order and decrements listing stock in one transaction.
// The stock check runs against the transactional read, so two concurrent
// checkouts cannot both take the last unit.
func (r *firestoreOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = r.client.Collection("orders").NewDoc().ID
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		listingRef := r.client.Collection("listings").Doc(order.ListingID)
		doc, err := tx.Get(listingRef)
		if err != nil {
			return err
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return err
		}

		if listing.Stock < order.Quantity {
			return errors.Conflict("Insufficient stock")
		}

		listing.Stock -= order.Quantity
		if listing.Stock == 0 {
			listing.Status = entity.ListingStatusSoldOut
		}
		listing.UpdatedAt = now

		if err := tx.Set(listingRef, &listing); err != nil {
			return err
		}
		return tx.Set(r.client.Collection("orders").Doc(order.ID), order)
	})
	if err != nil {
		if errors.Is(err, "CONFLICT") {
			return err
		}
		return errors.Internal("Failed to create order", err)
	}

	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection("orders").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}

	return &order, nil
}

func (r *firestoreOrderRepository) ListByBuyerID(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, int64, error) {
	return r.listByField(ctx, "buyerId", buyerID, limit, offset)
}

func (r *firestoreOrderRepository) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Order, int64, error) {
	return r.listByField(ctx, "sellerId", sellerID, limit, offset)
}

func (r *firestoreOrderRepository) listByField(ctx context.Context, field, value string, limit, offset int) ([]*entity.Order, int64, error) {
	filter := map[string]interface{}{field: value}
	return r.List(ctx, filter, limit, offset)
}

func (r *firestoreOrderRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Order, int64, error) {
	query := r.client.Collection("orders").Query

	for key, value := range filter {
		query = query.Where(key, "==", value)
	}

	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count orders", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var orders []*entity.Order

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate orders", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return nil, 0, errors.Internal("Failed to parse order data", err)
		}
		orders = append(orders, &order)
	}

	return orders, total, nil
}

func (r *firestoreOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	order.UpdatedAt = time.Now()

	_, err := r.client.Collection("orders").Doc(order.ID).Set(ctx, order)
	if err != nil {
		return errors.Internal("Failed to update order", err)
	}

	return nil
}

func (r *firestoreOrderRepository) AppendMessage(ctx context.Context, orderID string, message *entity.ChatMessage) error {
	messages := r.client.Collection("orders").Doc(orderID).Collection("messages")
	if message.ID == "" {
		message.ID = messages.NewDoc().ID
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := messages.Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to append order message", err)
	}

	return nil
}

func (r *firestoreOrderRepository) ListMessages(ctx context.Context, orderID string) ([]*entity.ChatMessage, error) {
	iter := r.client.Collection("orders").Doc(orderID).Collection("messages").
		OrderBy("createdAt", firestore.Asc).Documents(ctx)

	var messages []*entity.ChatMessage
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate order messages", err)
		}

		var message entity.ChatMessage
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Internal("Failed to parse order message", err)
		}
		messages = append(messages, &message)
	}

	return messages, nil
}
