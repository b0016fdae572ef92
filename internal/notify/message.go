package notify

import (
	"fmt"
	"strings"

	"github.com/hazolabs/storefront-backend/pkg/outbox/payloads"
)

// OrderMessage renders the Telegram Markdown summary for a submitted order.
func OrderMessage(order payloads.OrderSubmitted) string {
	var b strings.Builder

	b.WriteString("*New order received*\n")
	fmt.Fprintf(&b, "Order: `%s`\n\n", order.OrderNumber)

	fmt.Fprintf(&b, "*Customer*\n%s\n%s\n", order.CustomerName, order.CustomerPhone)
	if order.CustomerLine != nil {
		fmt.Fprintf(&b, "LINE: %s\n", *order.CustomerLine)
	}
	if order.StoreName != nil {
		fmt.Fprintf(&b, "Store: %s", *order.StoreName)
		if order.StoreNumber != nil {
			fmt.Fprintf(&b, " (%s)", *order.StoreNumber)
		}
		b.WriteString("\n")
	}
	if order.ShippingMethod != "" {
		fmt.Fprintf(&b, "Shipping: %s\n", order.ShippingMethod)
	}

	b.WriteString("\n*Items*\n")
	for _, item := range order.Items {
		name := item.Name
		if item.VariantValue != nil {
			name = fmt.Sprintf("%s (%s)", item.Name, *item.VariantValue)
		}
		fmt.Fprintf(&b, "- %s x%d = %s\n", name, item.Quantity, item.TotalPrice.StringFixed(2))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", order.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Shipping: %s\n", order.ShippingFee.StringFixed(2))
	if order.Discount.IsPositive() {
		fmt.Fprintf(&b, "Discount: -%s", order.Discount.StringFixed(2))
		if order.CouponCode != nil {
			fmt.Fprintf(&b, " (%s)", *order.CouponCode)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "*Total: %s*", order.Total.StringFixed(2))

	return b.String()
}
