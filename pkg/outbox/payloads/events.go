package payloads

import "github.com/shopspring/decimal"

// OrderSubmittedItem is one denormalized line inside an order event.
type OrderSubmittedItem struct {
	Name         string          `json:"name"`
	VariantValue *string         `json:"variantValue,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
}

// OrderSubmitted is emitted after an order commits; the notifier consumes it
// to build the Telegram message without re-reading the order rows.
type OrderSubmitted struct {
	OrderID        int64                `json:"orderId"`
	OrderNumber    string               `json:"orderNumber"`
	CustomerName   string               `json:"customerName"`
	CustomerPhone  string               `json:"customerPhone"`
	CustomerLine   *string              `json:"customerLine,omitempty"`
	StoreName      *string              `json:"storeName,omitempty"`
	StoreNumber    *string              `json:"storeNumber,omitempty"`
	ShippingMethod string               `json:"shippingMethod,omitempty"`
	Items          []OrderSubmittedItem `json:"items"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	ShippingFee    decimal.Decimal      `json:"shippingFee"`
	Discount       decimal.Decimal      `json:"discount"`
	Total          decimal.Decimal      `json:"total"`
	CouponCode     *string              `json:"couponCode,omitempty"`
}

// NotificationTest is emitted when an admin requests a test message.
type NotificationTest struct {
	Message string `json:"message"`
}
