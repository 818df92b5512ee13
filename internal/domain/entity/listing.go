package entity

import (
	"time"
)

const (
	DeliveryInstant = "Instant"
	DeliveryManual  = "Manual"
	DeliveryAuto    = "Auto-Delivery"
)

const (
	ListingStatusActive  = "Active"
	ListingStatusSoldOut = "Sold Out"
)

// SellerSnapshot is the seller data embedded in a listing so the marketplace
// can render and filter offers without joining users.
type SellerSnapshot struct {
	Username   string  `json:"username" firestore:"username"`
	Avatar     string  `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	IsOnline   bool    `json:"is_online" firestore:"isOnline"`
	Reputation float64 `json:"reputation" firestore:"reputation"`
	TotalSales int     `json:"total_sales" firestore:"totalSales"`
}

type Listing struct {
	ID          string         `json:"id" firestore:"id"`
	GameID      string         `json:"game_id" firestore:"gameId"`
	CategoryID  string         `json:"category_id" firestore:"categoryId"`
	Title       string         `json:"title" firestore:"title"`
	Description string         `json:"description" firestore:"description"`
	Image       string         `json:"image,omitempty" firestore:"image,omitempty"`
	Price       float64        `json:"price" firestore:"price"`
	Unit        string         `json:"unit" firestore:"unit"`
	Stock       int            `json:"stock" firestore:"stock"`
	MinQty      int            `json:"min_qty" firestore:"minQty"`
	SellerID    string         `json:"seller_id" firestore:"sellerId"`
	Seller      SellerSnapshot `json:"seller" firestore:"seller"`

	DeliveryType string `json:"delivery_type" firestore:"deliveryType"`
	DeliveryTime string `json:"delivery_time" firestore:"deliveryTime"`

	PlatformID string   `json:"platform_id,omitempty" firestore:"platformId,omitempty"`
	Region     string   `json:"region,omitempty" firestore:"region,omitempty"`
	Tags       []string `json:"tags" firestore:"tags"`
	Status     string   `json:"status" firestore:"status"`

	// CustomValues holds the seller's answers to the owning category config's
	// listing fields, keyed by field id. Values are strings or numbers.
	CustomValues map[string]interface{} `json:"custom_values,omitempty" firestore:"customValues,omitempty"`

	// VariantID links back to the predefined variant when the listing was
	// created through the fixed-product path.
	VariantID string `json:"variant_id,omitempty" firestore:"variantId,omitempty"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}
