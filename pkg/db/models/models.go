package models

import "github.com/shopspring/decimal"

func init() {
	// Money fields serialize as JSON numbers; the SPA consumes them raw.
	decimal.MarshalJSONWithoutQuotes = true
}

// All lists every persisted model; test fixtures auto-migrate from here.
func All() []any {
	return []any{
		&Category{},
		&Product{},
		&ProductVariant{},
		&ProductImage{},
		&CartItem{},
		&Coupon{},
		&Announcement{},
		&Admin{},
		&SystemSetting{},
		&HomepageSection{},
		&FooterSection{},
		&PageContent{},
		&Order{},
		&OrderItem{},
		&OutboxEvent{},
	}
}
