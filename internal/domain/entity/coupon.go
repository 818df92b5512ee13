package entity

import (
	"time"
)

const (
	CouponPercentage = "Percentage"
	CouponFixed      = "Fixed"
)

const (
	CouponStatusActive  = "Active"
	CouponStatusExpired = "Expired"
)

type Coupon struct {
	ID       string  `json:"id" firestore:"id"`
	Code     string  `json:"code" firestore:"code"`
	Discount float64 `json:"discount" firestore:"discount"`
	Type     string  `json:"type" firestore:"type"`
	Uses     int     `json:"uses" firestore:"uses"`
	MaxUses  int     `json:"max_uses" firestore:"maxUses"`
	Status   string  `json:"status" firestore:"status"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Apply returns the total after the coupon discount, never below zero.
func (c *Coupon) Apply(total float64) float64 {
	var discounted float64
	switch c.Type {
	case CouponPercentage:
		discounted = total * (1 - c.Discount/100)
	case CouponFixed:
		discounted = total - c.Discount
	default:
		return total
	}
	if discounted < 0 {
		return 0
	}
	return discounted
}
