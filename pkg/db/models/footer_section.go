package models

import "time"

// FooterSection is an editable block in the storefront footer.
type FooterSection struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SectionType  string    `gorm:"column:section_type;not null" json:"section_type"`
	Title        string    `gorm:"column:title;not null" json:"title"`
	Content      *string   `gorm:"column:content" json:"content,omitempty"`
	LinkURL      *string   `gorm:"column:link_url" json:"link_url,omitempty"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
