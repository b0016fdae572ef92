package inventory

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
)

// TargetKind selects which stock pool a decrement applies to.
type TargetKind string

const (
	TargetProduct TargetKind = "product"
	TargetVariant TargetKind = "variant"
)

// Target identifies one stock row. DisplayName is carried into the
// insufficient-stock error so callers can surface a human-readable message
// ("Mango Ice (30ml)") without another lookup.
type Target struct {
	Kind        TargetKind
	ID          int64
	DisplayName string
}

// Decrement atomically takes qty units from the target's stock pool inside
// the caller's transaction. The guarded UPDATE is the only oracle: when no
// row matches (missing id or not enough stock) the decrement failed and the
// caller must abort the transaction. Stock can never go negative because the
// check and the subtraction are one statement.
func Decrement(ctx context.Context, tx *gorm.DB, target Target, qty int) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	var table string
	switch target.Kind {
	case TargetProduct:
		table = "products"
	case TargetVariant:
		table = "product_variants"
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown inventory target kind %q", target.Kind))
	}

	res := tx.WithContext(ctx).Exec(
		fmt.Sprintf("UPDATE %s SET stock = stock - ? WHERE id = ? AND stock >= ?", table),
		qty, target.ID, qty,
	)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "decrement stock")
	}
	if res.RowsAffected == 0 {
		name := target.DisplayName
		if name == "" {
			name = fmt.Sprintf("%s %d", target.Kind, target.ID)
		}
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, fmt.Sprintf("insufficient stock for %s", name)).
			WithDetails(map[string]any{
				"target":    string(target.Kind),
				"target_id": target.ID,
				"requested": qty,
			})
	}
	return nil
}
