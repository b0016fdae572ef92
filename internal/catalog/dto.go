package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/hazolabs/storefront-backend/pkg/pagination"
)

// Filters narrows the public product listing.
type Filters struct {
	Category string
	Brand    string
	Search   string
	Page     pagination.Params
}

type ProductInput struct {
	Name          string           `json:"name"`
	Description   *string          `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Category      string           `json:"category"`
	Brand         *string          `json:"brand"`
	Stock         int              `json:"stock"`
	ImageURL      *string          `json:"image_url"`
	Badge         *string          `json:"badge"`
	IsActive      *bool            `json:"is_active"`
}

type VariantInput struct {
	VariantType   string          `json:"variant_type"`
	VariantValue  string          `json:"variant_value"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	Stock         int             `json:"stock"`
	SKU           *string         `json:"sku"`
	IsActive      *bool           `json:"is_active"`
}

type ImageInput struct {
	ImageURL     string  `json:"image_url"`
	AltText      *string `json:"alt_text"`
	DisplayOrder int     `json:"display_order"`
	IsPrimary    bool    `json:"is_primary"`
}

type ImageOrder struct {
	ID           int64 `json:"id"`
	DisplayOrder int   `json:"display_order"`
}

type StockUpdate struct {
	ProductID int64 `json:"product_id"`
	Stock     int   `json:"stock"`
}

type CategoryInput struct {
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"image_url"`
	DisplayOrder int     `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

// BrandCount is one row of the public brand listing.
type BrandCount struct {
	Brand string `json:"brand"`
	Count int64  `json:"count"`
}

// CategoryStat pairs a category with how many products reference it.
type CategoryStat struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int64  `json:"product_count"`
}
