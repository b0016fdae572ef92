package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hazolabs/storefront-backend/pkg/enums"
)

// Order is the aggregate root for a submitted checkout. The order number is
// derived from the row id after insert (ORD-<year>-<zero-padded id>), so it
// starts empty inside the insert transaction.
type Order struct {
	ID             int64             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderNumber    string            `gorm:"column:order_number;not null;default:''" json:"order_number"`
	CustomerName   string            `gorm:"column:customer_name;not null" json:"customer_name"`
	CustomerPhone  string            `gorm:"column:customer_phone;not null" json:"customer_phone"`
	CustomerLine   *string           `gorm:"column:customer_line" json:"customer_line,omitempty"`
	StoreName      *string           `gorm:"column:store_name" json:"store_name,omitempty"`
	StoreNumber    *string           `gorm:"column:store_number" json:"store_number,omitempty"`
	ShippingMethod *string           `gorm:"column:shipping_method" json:"shipping_method,omitempty"`
	Subtotal       decimal.Decimal   `gorm:"column:subtotal;type:decimal(10,2);not null" json:"subtotal"`
	ShippingFee    decimal.Decimal   `gorm:"column:shipping_fee;type:decimal(10,2);not null;default:0" json:"shipping_fee"`
	DiscountAmount decimal.Decimal   `gorm:"column:discount_amount;type:decimal(10,2);not null;default:0" json:"discount_amount"`
	CouponCode     *string           `gorm:"column:coupon_code" json:"coupon_code,omitempty"`
	TotalAmount    decimal.Decimal   `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
	Status         enums.OrderStatus `gorm:"column:status;not null;default:pending" json:"status"`
	Items          []OrderItem       `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
