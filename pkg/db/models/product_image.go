package models

import "time"

// ProductImage is a gallery entry; at most one per product is primary.
type ProductImage struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID    int64     `gorm:"column:product_id;not null;index" json:"product_id"`
	ImageURL     string    `gorm:"column:image_url;not null" json:"image_url"`
	AltText      *string   `gorm:"column:alt_text" json:"alt_text,omitempty"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
	IsPrimary    bool      `gorm:"column:is_primary;not null;default:false" json:"is_primary"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
