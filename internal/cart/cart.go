package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

// Line is a cart row joined with current catalog pricing. Unit price is the
// product base price plus the variant modifier when a variant is selected.
type Line struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	VariantID    *int64          `json:"variant_id,omitempty"`
	Name         string          `json:"name"`
	ImageURL     *string         `json:"image_url,omitempty"`
	VariantType  *string         `json:"variant_type,omitempty"`
	VariantValue *string         `json:"variant_value,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// Cart is the priced view of a session's items.
type Cart struct {
	SessionID   string          `json:"session_id"`
	Items       []Line          `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

type AddInput struct {
	ProductID int64  `json:"product_id"`
	VariantID *int64 `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

type Service struct {
	db   *gorm.DB
	logg *logger.Logger
}

func NewService(db *gorm.DB, logg *logger.Logger) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{db: db, logg: logg}, nil
}

// Get prices the session's cart against the live catalog. Rows whose product
// disappeared or was deactivated are skipped rather than erroring; the SPA
// re-renders from what remains.
func (s *Service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	var lines []Line
	err := s.db.WithContext(ctx).
		Table("cart_items ci").
		Select(`ci.id, ci.product_id, ci.variant_id, ci.quantity,
			p.name, p.image_url,
			pv.variant_type, pv.variant_value,
			p.price + COALESCE(pv.price_modifier, 0) AS unit_price,
			(p.price + COALESCE(pv.price_modifier, 0)) * ci.quantity AS line_total`).
		Joins("JOIN products p ON p.id = ci.product_id AND p.is_active = ?", true).
		Joins("LEFT JOIN product_variants pv ON pv.id = ci.variant_id").
		Where("ci.session_id = ?", sessionID).
		Order("ci.created_at ASC, ci.id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	cart := &Cart{SessionID: sessionID, Items: lines, TotalAmount: decimal.Zero}
	for _, line := range lines {
		cart.TotalAmount = cart.TotalAmount.Add(line.LineTotal)
		cart.ItemCount += line.Quantity
	}
	return cart, nil
}

// Add merges with an existing row for the same product+variant instead of
// creating duplicates.
func (s *Service) Add(ctx context.Context, sessionID string, input AddInput) (*Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if err := s.checkProduct(ctx, input.ProductID, input.VariantID); err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, input.ProductID)
	if input.VariantID != nil {
		q = q.Where("variant_id = ?", *input.VariantID)
	} else {
		q = q.Where("variant_id IS NULL")
	}

	var existing models.CartItem
	err := q.First(&existing).Error
	switch {
	case err == nil:
		err = s.db.WithContext(ctx).
			Model(&existing).
			Update("quantity", gorm.Expr("quantity + ?", input.Quantity)).Error
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "merge cart item")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := models.CartItem{
			SessionID: sessionID,
			ProductID: input.ProductID,
			VariantID: input.VariantID,
			Quantity:  input.Quantity,
		}
		if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}

	return s.Get(ctx, sessionID)
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, itemID int64, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	res := s.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND session_id = ?", itemID, sessionID).
		Update("quantity", quantity)
	if res.Error != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "update cart item")
	}
	if res.RowsAffected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return s.Get(ctx, sessionID)
}

func (s *Service) Remove(ctx context.Context, sessionID string, itemID int64) (*Cart, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", itemID, sessionID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "remove cart item")
	}
	if res.RowsAffected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return s.Get(ctx, sessionID)
}

// Clear drops every row for the session, typically after a successful order.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *Service) checkProduct(ctx context.Context, productID int64, variantID *int64) error {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND is_active = ?", productID, true).
		Count(&n).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product")
	}
	if n == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if variantID == nil {
		return nil
	}

	err = s.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ? AND product_id = ?", *variantID, productID).
		Count(&n).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check variant")
	}
	if n == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}
	return nil
}
