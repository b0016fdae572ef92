package models

import (
	"time"

	"github.com/hazolabs/storefront-backend/pkg/enums"
)

// Announcement is a storefront banner message.
type Announcement struct {
	ID        int64                  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title     string                 `gorm:"column:title;not null" json:"title"`
	Content   string                 `gorm:"column:content;not null" json:"content"`
	Type      enums.AnnouncementType `gorm:"column:type;not null;default:info" json:"type"`
	IsActive  bool                   `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
