package orders

import "github.com/shopspring/decimal"

// Snapshot is the checkout payload the SPA submits. Prices inside it are the
// client's view of the cart; Submit re-validates the arithmetic before
// touching the database.
type Snapshot struct {
	CustomerInfo   CustomerInfo   `json:"customerInfo"`
	ShippingMethod string         `json:"shippingMethod"`
	Items          []LineItem     `json:"items"`
	Totals         Totals         `json:"totals"`
	AppliedCoupon  *AppliedCoupon `json:"appliedCoupon,omitempty"`
}

type CustomerInfo struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	LineID      string `json:"line_id"`
	StoreName   string `json:"store_name"`
	StoreNumber string `json:"store_number"`
}

type LineItem struct {
	ProductID    int64           `json:"product_id"`
	VariantID    *int64          `json:"variant_id,omitempty"`
	Name         string          `json:"name"`
	VariantType  string          `json:"variant_type,omitempty"`
	VariantValue string          `json:"variant_value,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
}

type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Discount   decimal.Decimal `json:"discount"`
	FinalTotal decimal.Decimal `json:"finalTotal"`
}

type AppliedCoupon struct {
	Coupon CouponRef `json:"coupon"`
}

type CouponRef struct {
	Code string `json:"code"`
}

// Result is the public response for a successful submit.
type Result struct {
	OrderID     int64  `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
}
