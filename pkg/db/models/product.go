package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a storefront listing. Price columns are DECIMAL(10,2); money
// never passes through float64.
type Product struct {
	ID            int64            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name          string           `gorm:"column:name;not null" json:"name"`
	Description   *string          `gorm:"column:description" json:"description,omitempty"`
	Price         decimal.Decimal  `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	OriginalPrice *decimal.Decimal `gorm:"column:original_price;type:decimal(10,2)" json:"original_price,omitempty"`
	Category      string           `gorm:"column:category;not null" json:"category"`
	Brand         *string          `gorm:"column:brand" json:"brand,omitempty"`
	Stock         int              `gorm:"column:stock;not null;default:0" json:"stock"`
	ImageURL      *string          `gorm:"column:image_url" json:"image_url,omitempty"`
	Badge         *string          `gorm:"column:badge" json:"badge,omitempty"`
	IsActive      bool             `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Variants      []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Images        []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
