package notify

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hazolabs/storefront-backend/pkg/outbox/payloads"
)

func strPtr(s string) *string { return &s }

func TestOrderMessageIncludesSummary(t *testing.T) {
	msg := OrderMessage(payloads.OrderSubmitted{
		OrderNumber:    "ORD-2026-000042",
		CustomerName:   "Mei Lin",
		CustomerPhone:  "0912345678",
		CustomerLine:   strPtr("meilin88"),
		StoreName:      strPtr("7-11 Daan"),
		StoreNumber:    strPtr("123456"),
		ShippingMethod: "cvs",
		Items: []payloads.OrderSubmittedItem{
			{Name: "Mango Ice", Quantity: 2, UnitPrice: decimal.NewFromInt(390), TotalPrice: decimal.NewFromInt(780)},
			{Name: "Grape Soda", VariantValue: strPtr("30ml"), Quantity: 1, UnitPrice: decimal.NewFromInt(350), TotalPrice: decimal.NewFromInt(350)},
		},
		Subtotal:    decimal.NewFromInt(1130),
		ShippingFee: decimal.NewFromInt(60),
		Discount:    decimal.NewFromInt(100),
		Total:       decimal.NewFromInt(1090),
		CouponCode:  strPtr("SAVE100"),
	})

	for _, want := range []string{
		"ORD-2026-000042",
		"Mei Lin",
		"0912345678",
		"meilin88",
		"7-11 Daan (123456)",
		"Mango Ice x2 = 780.00",
		"Grape Soda (30ml) x1 = 350.00",
		"Subtotal: 1130.00",
		"Discount: -100.00 (SAVE100)",
		"*Total: 1090.00*",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestOrderMessageOmitsOptionalLines(t *testing.T) {
	msg := OrderMessage(payloads.OrderSubmitted{
		OrderNumber:   "ORD-2026-000001",
		CustomerName:  "Mei Lin",
		CustomerPhone: "0912345678",
		Items: []payloads.OrderSubmittedItem{
			{Name: "Mango Ice", Quantity: 1, UnitPrice: decimal.NewFromInt(390), TotalPrice: decimal.NewFromInt(390)},
		},
		Subtotal:    decimal.NewFromInt(390),
		ShippingFee: decimal.NewFromInt(60),
		Discount:    decimal.Zero,
		Total:       decimal.NewFromInt(450),
	})

	for _, absent := range []string{"LINE:", "Store:", "Discount:"} {
		if strings.Contains(msg, absent) {
			t.Fatalf("message should omit %q:\n%s", absent, msg)
		}
	}
}
