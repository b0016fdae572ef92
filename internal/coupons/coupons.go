package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/pkg/db"
	"github.com/hazolabs/storefront-backend/pkg/db/models"
	"github.com/hazolabs/storefront-backend/pkg/enums"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

type Input struct {
	Code              string           `json:"code"`
	Description       *string          `json:"description"`
	DiscountType      enums.CouponType `json:"discount_type"`
	DiscountValue     decimal.Decimal  `json:"discount_value"`
	MinPurchaseAmount decimal.Decimal  `json:"min_purchase_amount"`
	ExpiryDate        *time.Time       `json:"expiry_date"`
	IsActive          *bool            `json:"is_active"`
}

// Validation is the public coupon check result for a given cart amount.
type Validation struct {
	Coupon         *models.Coupon  `json:"coupon"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`
}

type Service struct {
	db   *gorm.DB
	logg *logger.Logger
	now  func() time.Time
}

func NewService(conn *gorm.DB, logg *logger.Logger) (*Service, error) {
	if conn == nil {
		return nil, fmt.Errorf("db is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{db: conn, logg: logg, now: time.Now}, nil
}

// Validate applies the storefront coupon rules in order: the code must exist
// and be active, not expired, and the cart must meet the minimum purchase.
// Percentage discounts round to two decimals; the final amount never goes
// below zero.
func (s *Service) Validate(ctx context.Context, code string, amount decimal.Decimal) (*Validation, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	if amount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount cannot be negative")
	}

	var coupon models.Coupon
	err := s.db.WithContext(ctx).
		Where("UPPER(code) = ? AND is_active = ?", code, true).
		First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invalid coupon code")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	if coupon.ExpiryDate != nil && coupon.ExpiryDate.Before(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon has expired")
	}
	if amount.LessThan(coupon.MinPurchaseAmount) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("minimum purchase of %s required", coupon.MinPurchaseAmount.StringFixed(2))).
			WithDetails(map[string]any{"min_purchase_amount": coupon.MinPurchaseAmount.String()})
	}

	var discount decimal.Decimal
	switch coupon.DiscountType {
	case enums.CouponTypePercentage:
		discount = amount.Mul(coupon.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	case enums.CouponTypeFixed:
		discount = coupon.DiscountValue
	default:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("unknown discount type %q", coupon.DiscountType))
	}

	final := amount.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}
	return &Validation{Coupon: &coupon, DiscountAmount: discount, FinalAmount: final}, nil
}

func (s *Service) List(ctx context.Context) ([]models.Coupon, error) {
	var rows []models.Coupon
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	return rows, nil
}

func (s *Service) Create(ctx context.Context, input Input) (*models.Coupon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	coupon := &models.Coupon{
		Code:              strings.ToUpper(strings.TrimSpace(input.Code)),
		Description:       input.Description,
		DiscountType:      input.DiscountType,
		DiscountValue:     input.DiscountValue,
		MinPurchaseAmount: input.MinPurchaseAmount,
		ExpiryDate:        input.ExpiryDate,
		IsActive:          true,
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}
	if err := s.db.WithContext(ctx).Create(coupon).Error; err != nil {
		if db.IsUniqueViolation(err, "coupons.code") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create coupon")
	}
	return coupon, nil
}

func (s *Service) Update(ctx context.Context, id int64, input Input) (*models.Coupon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	coupon, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	coupon.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	coupon.Description = input.Description
	coupon.DiscountType = input.DiscountType
	coupon.DiscountValue = input.DiscountValue
	coupon.MinPurchaseAmount = input.MinPurchaseAmount
	coupon.ExpiryDate = input.ExpiryDate
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}
	if err := s.db.WithContext(ctx).Save(coupon).Error; err != nil {
		if db.IsUniqueViolation(err, "coupons.code") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update coupon")
	}
	return coupon, nil
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*models.Coupon, error) {
	coupon, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(coupon).Update("is_active", active).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle coupon")
	}
	coupon.IsActive = active
	return coupon, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Coupon{}, id).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete coupon")
	}
	return nil
}

func (s *Service) find(ctx context.Context, id int64) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := s.db.WithContext(ctx).First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}
	return &coupon, nil
}

func validateInput(input Input) error {
	if strings.TrimSpace(input.Code) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	if !input.DiscountType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount type must be percentage or fixed")
	}
	if !input.DiscountValue.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount value must be positive")
	}
	if input.DiscountType == enums.CouponTypePercentage && input.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "percentage discount cannot exceed 100")
	}
	if input.MinPurchaseAmount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "minimum purchase cannot be negative")
	}
	return nil
}
