package models

import "time"

// Category groups products for storefront navigation.
type Category struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Slug         string    `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Description  *string   `gorm:"column:description" json:"description,omitempty"`
	ImageURL     *string   `gorm:"column:image_url" json:"image_url,omitempty"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
