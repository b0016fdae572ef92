package orders

import (
	"fmt"
	"time"
)

// FormatOrderNumber derives the customer-facing number from the row id once
// the insert has assigned it. The id is zero-padded to six digits; beyond a
// million orders the number simply grows wider.
func FormatOrderNumber(id int64, at time.Time) string {
	return fmt.Sprintf("ORD-%d-%06d", at.Year(), id)
}
