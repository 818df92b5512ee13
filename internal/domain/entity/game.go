package entity

import (
	"time"
)

type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldSelect FieldType = "select"
)

type FilterType string

const (
	FilterNone   FilterType = "none"
	FilterSelect FilterType = "select"
	FilterRange  FilterType = "range"
)

// CustomField is an admin-defined field definition, e.g. "Server" or
// "Skin Rarity". Listing fields are filled by the seller, buyer fields by
// the buyer at checkout.
type CustomField struct {
	ID         string     `json:"id" firestore:"id"`
	Label      string     `json:"label" firestore:"label"`
	Type       FieldType  `json:"type" firestore:"type"`
	Options    []string   `json:"options,omitempty" firestore:"options,omitempty"`
	Required   bool       `json:"required" firestore:"required"`
	FilterType FilterType `json:"filter_type,omitempty" firestore:"filterType,omitempty"`
}

// GameVariant is a fixed, admin-defined purchasable product, e.g.
// "1000 V-Bucks". When a category config carries variants, sellers pick one
// instead of typing a free title.
type GameVariant struct {
	ID       string `json:"id" firestore:"id"`
	Name     string `json:"name" firestore:"name"`
	Image    string `json:"image,omitempty" firestore:"image,omitempty"`
	Subtitle string `json:"subtitle,omitempty" firestore:"subtitle,omitempty"`
}

// CategoryConfig is the admin-defined schema for one game+category pairing.
type CategoryConfig struct {
	ListingFields      []CustomField `json:"listing_fields" firestore:"listingFields"`
	BuyerFields        []CustomField `json:"buyer_fields" firestore:"buyerFields"`
	DeliveryOptions    []string      `json:"delivery_options" firestore:"deliveryOptions"`
	PredefinedVariants []GameVariant `json:"predefined_variants,omitempty" firestore:"predefinedVariants,omitempty"`
}

// Variant returns the predefined variant with the given id, or nil.
func (c CategoryConfig) Variant(id string) *GameVariant {
	for i := range c.PredefinedVariants {
		if c.PredefinedVariants[i].ID == id {
			return &c.PredefinedVariants[i]
		}
	}
	return nil
}

// AllowsDelivery reports whether the config permits the given delivery type.
// Auto-Delivery is an instant-capable mode and follows the Instant option.
func (c CategoryConfig) AllowsDelivery(deliveryType string) bool {
	want := deliveryType
	if deliveryType == DeliveryAuto {
		want = DeliveryInstant
	}
	for _, opt := range c.DeliveryOptions {
		if opt == want {
			return true
		}
	}
	return false
}

// FilterableFields returns the listing fields that participate in
// marketplace filtering.
func (c CategoryConfig) FilterableFields() []CustomField {
	var fields []CustomField
	for _, f := range c.ListingFields {
		if f.FilterType == FilterSelect || f.FilterType == FilterRange {
			fields = append(fields, f)
		}
	}
	return fields
}

// DefaultCategoryConfig is the permissive fallback used when a game has no
// config for a category: no custom fields, both delivery types allowed,
// no predefined variants.
func DefaultCategoryConfig() CategoryConfig {
	return CategoryConfig{
		DeliveryOptions: []string{DeliveryInstant, DeliveryManual},
	}
}

type Game struct {
	ID              string                    `json:"id" firestore:"id"`
	Name            string                    `json:"name" firestore:"name"`
	Slug            string                    `json:"slug" firestore:"slug"`
	Image           string                    `json:"image" firestore:"image"`
	DetailImage     string                    `json:"detail_image,omitempty" firestore:"detailImage,omitempty"`
	CategoryIDs     []string                  `json:"category_ids" firestore:"categoryIds"`
	PlatformGroupID string                    `json:"platform_group_id,omitempty" firestore:"platformGroupId,omitempty"`
	SEO             *SEOSettings              `json:"seo,omitempty" firestore:"seo,omitempty"`
	CategoryConfigs map[string]CategoryConfig `json:"category_configs" firestore:"categoryConfigs"`
	Status          string                    `json:"status" firestore:"status"`
	CreatedAt       time.Time                 `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time                 `json:"updated_at" firestore:"updatedAt"`
	DeletedAt       *time.Time                `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}

// Config returns the category config for the given category, falling back to
// the permissive default when none is set. Callers never see an error for an
// absent config.
func (g *Game) Config(categoryID string) CategoryConfig {
	if cfg, ok := g.CategoryConfigs[categoryID]; ok {
		return cfg
	}
	return DefaultCategoryConfig()
}

// HasCategory reports whether the game participates in the category.
func (g *Game) HasCategory(categoryID string) bool {
	for _, id := range g.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// SyncListingWithVariant applies the cascading update rule for one listing:
// when the listing references a variant that still exists in the game's
// config, title, image and unit are refreshed from the variant definition.
// Image falls back to the game image when the variant has none; unit keeps
// its previous value when the variant defines no subtitle. Listings whose
// variant is gone are left untouched. Reports whether the listing changed.
func SyncListingWithVariant(game *Game, listing *Listing) bool {
	if listing.GameID != game.ID || listing.VariantID == "" {
		return false
	}

	cfg, ok := game.CategoryConfigs[listing.CategoryID]
	if !ok {
		return false
	}

	variant := cfg.Variant(listing.VariantID)
	if variant == nil {
		return false
	}

	listing.Title = variant.Name
	if variant.Image != "" {
		listing.Image = variant.Image
	} else {
		listing.Image = game.Image
	}
	if variant.Subtitle != "" {
		listing.Unit = variant.Subtitle
	}
	return true
}
