package entity

import (
	"time"
)

// CategoryLayout determines which browsing/derivation path listings of a
// category take in the marketplace.
type CategoryLayout string

const (
	// LayoutListGrid is the free-form grid/detail browsing mode used for
	// accounts, items and similar listings.
	LayoutListGrid CategoryLayout = "LIST_GRID"
	// LayoutGroupedGiftCard is the master/detail browsing mode used for
	// fixed-denomination products such as gift cards and top-ups.
	LayoutGroupedGiftCard CategoryLayout = "GROUPED_GIFT_CARD"
)

type SEOSettings struct {
	MetaTitle       string   `json:"meta_title" firestore:"metaTitle"`
	MetaDescription string   `json:"meta_description" firestore:"metaDescription"`
	Keywords        []string `json:"keywords,omitempty" firestore:"keywords,omitempty"`
}

type Category struct {
	ID        string         `json:"id" firestore:"id"`
	Name      string         `json:"name" firestore:"name"`
	Slug      string         `json:"slug" firestore:"slug"`
	Icon      string         `json:"icon,omitempty" firestore:"icon,omitempty"`
	Layout    CategoryLayout `json:"layout" firestore:"layout"`
	SEO       SEOSettings    `json:"seo" firestore:"seo"`
	IsActive  bool           `json:"is_active" firestore:"isActive"`
	CreatedAt time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time      `json:"updated_at" firestore:"updatedAt"`
}
