package entity

import (
	"time"
)

const (
	ReviewPositive = "Positive"
	ReviewNegative = "Negative"
)

const (
	ReviewStatusApproved = "Approved"
	ReviewStatusFlagged  = "Flagged"
)

type Review struct {
	ID       string `json:"id" firestore:"id"`
	SellerID string `json:"seller_id" firestore:"sellerId"`
	OrderID  string `json:"order_id" firestore:"orderId"`
	AuthorID string `json:"author_id" firestore:"authorId"`
	Author   string `json:"author" firestore:"author"`

	Rating   string `json:"rating" firestore:"rating"`
	Text     string `json:"text" firestore:"text"`
	ItemName string `json:"item_name" firestore:"itemName"`
	Status   string `json:"status" firestore:"status"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
