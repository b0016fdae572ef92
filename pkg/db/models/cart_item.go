package models

import "time"

// CartItem is a session-scoped line in the anonymous shopping cart.
type CartItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SessionID string    `gorm:"column:session_id;not null;index" json:"session_id"`
	ProductID int64     `gorm:"column:product_id;not null" json:"product_id"`
	VariantID *int64    `gorm:"column:variant_id" json:"variant_id,omitempty"`
	Quantity  int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
