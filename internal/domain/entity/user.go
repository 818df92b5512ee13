package entity

import (
	"time"
)

const (
	RoleUser   = "user"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

const (
	UserStatusActive    = "Active"
	UserStatusBanned    = "Banned"
	UserStatusSuspended = "Suspended"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Role     string `json:"role" firestore:"role"`
	Status   string `json:"status" firestore:"status"`

	Avatar   string `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty" firestore:"bio,omitempty"`
	KYCLevel string `json:"kyc_level" firestore:"kycLevel"`

	WalletBalance float64  `json:"wallet_balance" firestore:"walletBalance"`
	Reputation    float64  `json:"reputation" firestore:"reputation"`
	TotalSales    int      `json:"total_sales" firestore:"totalSales"`
	IsOnline      bool     `json:"is_online" firestore:"isOnline"`
	Badges        []string `json:"badges,omitempty" firestore:"badges,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Snapshot returns the seller data embedded into listings and orders.
func (u *User) Snapshot() SellerSnapshot {
	return SellerSnapshot{
		Username:   u.Username,
		Avatar:     u.Avatar,
		IsOnline:   u.IsOnline,
		Reputation: u.Reputation,
		TotalSales: u.TotalSales,
	}
}
