package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem denormalizes the product name, variant value and unit price at
// purchase time so order history survives catalog edits. Product/variant
// references null out if the source rows are later deleted.
type OrderItem struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID      int64           `gorm:"column:order_id;not null;index" json:"order_id"`
	ProductID    *int64          `gorm:"column:product_id" json:"product_id,omitempty"`
	VariantID    *int64          `gorm:"column:variant_id" json:"variant_id,omitempty"`
	ProductName  string          `gorm:"column:product_name;not null" json:"product_name"`
	VariantValue *string         `gorm:"column:variant_value" json:"variant_value,omitempty"`
	UnitPrice    decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unit_price"`
	Quantity     int             `gorm:"column:quantity;not null" json:"quantity"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:decimal(10,2);not null" json:"total_price"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
