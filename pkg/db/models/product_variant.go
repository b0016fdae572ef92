package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant is a sellable option of a product (flavor, size, ...) with
// its own stock pool and an additive price modifier.
type ProductVariant struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID     int64           `gorm:"column:product_id;not null;index" json:"product_id"`
	VariantType   string          `gorm:"column:variant_type;not null" json:"variant_type"`
	VariantValue  string          `gorm:"column:variant_value;not null" json:"variant_value"`
	PriceModifier decimal.Decimal `gorm:"column:price_modifier;type:decimal(10,2);not null;default:0" json:"price_modifier"`
	Stock         int             `gorm:"column:stock;not null;default:0" json:"stock"`
	SKU           *string         `gorm:"column:sku" json:"sku,omitempty"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
