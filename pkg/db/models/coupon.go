package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hazolabs/storefront-backend/pkg/enums"
)

// Coupon is a checkout discount, either percentage or fixed amount.
type Coupon struct {
	ID                int64            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code              string           `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Description       *string          `gorm:"column:description" json:"description,omitempty"`
	DiscountType      enums.CouponType `gorm:"column:discount_type;not null" json:"discount_type"`
	DiscountValue     decimal.Decimal  `gorm:"column:discount_value;type:decimal(10,2);not null" json:"discount_value"`
	MinPurchaseAmount decimal.Decimal  `gorm:"column:min_purchase_amount;type:decimal(10,2);not null;default:0" json:"min_purchase_amount"`
	ExpiryDate        *time.Time       `gorm:"column:expiry_date" json:"expiry_date,omitempty"`
	IsActive          bool             `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
