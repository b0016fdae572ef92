package models

import "time"

// HomepageSection holds editable content for a named storefront section
// (hero, hero1, hero2, ...), upserted by section name.
type HomepageSection struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Section    string    `gorm:"column:section;not null;uniqueIndex" json:"section"`
	Title      *string   `gorm:"column:title" json:"title,omitempty"`
	Subtitle   *string   `gorm:"column:subtitle" json:"subtitle,omitempty"`
	ImageURL   *string   `gorm:"column:image_url" json:"image_url,omitempty"`
	ButtonText *string   `gorm:"column:button_text" json:"button_text,omitempty"`
	ButtonLink *string   `gorm:"column:button_link" json:"button_link,omitempty"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
