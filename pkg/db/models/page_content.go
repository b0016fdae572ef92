package models

import (
	"encoding/json"
	"time"
)

// PageContent stores structured content for static pages (about, faq, ...)
// keyed by page_key. Content and Metadata are JSON documents owned by the
// frontend.
type PageContent struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PageKey   string          `gorm:"column:page_key;not null;uniqueIndex" json:"page_key"`
	Title     string          `gorm:"column:title;not null" json:"title"`
	Content   json.RawMessage `gorm:"column:content;type:text" json:"content,omitempty"`
	Metadata  json.RawMessage `gorm:"column:metadata;type:text" json:"metadata,omitempty"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
