package entity

import (
	"time"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderVerifying  OrderStatus = "Verifying"
	OrderDelivering OrderStatus = "In Delivery"
	OrderCompleted  OrderStatus = "Completed"
	OrderDisputed   OrderStatus = "Disputed"
	OrderCancelled  OrderStatus = "Cancelled"
)

type Order struct {
	ID        string  `json:"id" firestore:"id"`
	ListingID string  `json:"listing_id" firestore:"listingId"`
	Listing   Listing `json:"listing" firestore:"listing"`
	SellerID  string  `json:"seller_id" firestore:"sellerId"`
	BuyerID   string  `json:"buyer_id" firestore:"buyerId"`

	Quantity   int     `json:"quantity" firestore:"quantity"`
	TotalPrice float64 `json:"total_price" firestore:"totalPrice"`
	CouponCode string  `json:"coupon_code,omitempty" firestore:"couponCode,omitempty"`

	Status OrderStatus `json:"status" firestore:"status"`

	// BuyerInputValues holds the buyer's answers to the owning category
	// config's buyer fields, keyed by field id.
	BuyerInputValues map[string]string `json:"buyer_input_values,omitempty" firestore:"buyerInputValues,omitempty"`

	DisputeReason string `json:"dispute_reason,omitempty" firestore:"disputeReason,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

type ChatMessage struct {
	ID        string    `json:"id" firestore:"id"`
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	Text      string    `json:"text" firestore:"text"`
	IsSystem  bool      `json:"is_system,omitempty" firestore:"isSystem,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
