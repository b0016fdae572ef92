package models

import "time"

// SystemSetting is a key/value row; Telegram credentials and storefront
// toggles live here so they are editable without redeploys.
type SystemSetting struct {
	Key       string    `gorm:"column:key;primaryKey" json:"key"`
	Value     *string   `gorm:"column:value" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// Well-known settings keys.
const (
	SettingTelegramBotToken      = "telegram_bot_token"
	SettingTelegramChatID        = "telegram_chat_id"
	SettingFreeShippingThreshold = "free_shipping_threshold"
	SettingHeroImageURL          = "hero_image_url"
	SettingShowProductReviews    = "show_product_reviews"
	SettingShowProductPreview    = "show_product_preview"
)
