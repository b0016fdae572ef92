package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/internal/inventory"
	"github.com/hazolabs/storefront-backend/pkg/db"
	"github.com/hazolabs/storefront-backend/pkg/db/models"
	"github.com/hazolabs/storefront-backend/pkg/enums"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
	"github.com/hazolabs/storefront-backend/pkg/outbox"
	"github.com/hazolabs/storefront-backend/pkg/outbox/payloads"
	"github.com/hazolabs/storefront-backend/pkg/pagination"
)

type Service struct {
	client *db.Client
	repo   *Repository
	events *outbox.Service
	logg   *logger.Logger
	now    func() time.Time
}

func NewService(client *db.Client, repo *Repository, events *outbox.Service, logg *logger.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if events == nil {
		return nil, fmt.Errorf("outbox service is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{
		client: client,
		repo:   repo,
		events: events,
		logg:   logg,
		now:    time.Now,
	}, nil
}

// Submit persists the checkout snapshot as one transaction: order header,
// derived order number, denormalized items, and a stock decrement per line.
// The order.submitted event rides the same transaction so the notifier only
// ever sees committed orders.
func (s *Service) Submit(ctx context.Context, snapshot Snapshot) (*Result, error) {
	if err := validateSnapshot(snapshot); err != nil {
		return nil, err
	}

	var result Result
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order := orderFromSnapshot(snapshot)
		if err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		number := FormatOrderNumber(order.ID, s.now())
		if err := repo.SetOrderNumber(ctx, order.ID, number); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign order number")
		}
		order.OrderNumber = number

		for _, line := range snapshot.Items {
			item := itemFromLine(order.ID, line)
			if err := repo.CreateItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order item")
			}
			if err := inventory.Decrement(ctx, tx, decrementTarget(line), line.Quantity); err != nil {
				return err
			}
		}

		event := outbox.DomainEvent{
			EventType:     enums.OutboxEventOrderSubmitted,
			AggregateType: enums.OutboxAggregateOrder,
			AggregateID:   order.ID,
			Data:          submittedPayload(order.ID, number, snapshot),
			Version:       1,
			OccurredAt:    s.now(),
		}
		if err := s.events.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue order event")
		}

		result = Result{OrderID: order.ID, OrderNumber: number}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit order")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"order_id":     result.OrderID,
		"order_number": result.OrderNumber,
		"item_count":   len(snapshot.Items),
	})
	s.logg.Info(logCtx, "order submitted")

	return &result, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *Service) List(ctx context.Context, params pagination.Params) ([]models.Order, pagination.Meta, error) {
	params = params.Normalize()
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, pagination.MetaFor(params, total), nil
}

func validateSnapshot(snapshot Snapshot) error {
	if strings.TrimSpace(snapshot.CustomerInfo.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(snapshot.CustomerInfo.Phone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer phone is required")
	}
	if len(snapshot.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order has no items")
	}

	sum := decimal.Zero
	for i, line := range snapshot.Items {
		if line.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d has non-positive quantity", i)).
				WithDetails(map[string]any{"index": i, "quantity": line.Quantity})
		}
		if line.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d has negative price", i))
		}
		if strings.TrimSpace(line.Name) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d is missing a name", i))
		}
		sum = sum.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	t := snapshot.Totals
	if t.Subtotal.IsNegative() || t.Shipping.IsNegative() || t.Discount.IsNegative() || t.FinalTotal.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "totals cannot be negative")
	}
	if !t.Subtotal.Equal(sum) {
		return pkgerrors.New(pkgerrors.CodeValidation, "subtotal does not match line items").
			WithDetails(map[string]any{
				"subtotal": t.Subtotal.String(),
				"computed": sum.String(),
			})
	}
	if expected := t.Subtotal.Add(t.Shipping).Sub(t.Discount); !t.FinalTotal.Equal(expected) {
		return pkgerrors.New(pkgerrors.CodeValidation, "order total does not match subtotal, shipping and discount").
			WithDetails(map[string]any{
				"finalTotal": t.FinalTotal.String(),
				"expected":   expected.String(),
			})
	}
	return nil
}

func orderFromSnapshot(snapshot Snapshot) *models.Order {
	order := &models.Order{
		CustomerName:   strings.TrimSpace(snapshot.CustomerInfo.Name),
		CustomerPhone:  strings.TrimSpace(snapshot.CustomerInfo.Phone),
		CustomerLine:   optional(snapshot.CustomerInfo.LineID),
		StoreName:      optional(snapshot.CustomerInfo.StoreName),
		StoreNumber:    optional(snapshot.CustomerInfo.StoreNumber),
		ShippingMethod: optional(snapshot.ShippingMethod),
		Subtotal:       snapshot.Totals.Subtotal,
		ShippingFee:    snapshot.Totals.Shipping,
		DiscountAmount: snapshot.Totals.Discount,
		TotalAmount:    snapshot.Totals.FinalTotal,
		Status:         enums.OrderStatusPending,
	}
	if snapshot.AppliedCoupon != nil {
		order.CouponCode = optional(snapshot.AppliedCoupon.Coupon.Code)
	}
	return order
}

func itemFromLine(orderID int64, line LineItem) *models.OrderItem {
	item := &models.OrderItem{
		OrderID:     orderID,
		ProductName: line.Name,
		UnitPrice:   line.Price,
		Quantity:    line.Quantity,
		TotalPrice:  line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
	}
	if line.ProductID > 0 {
		id := line.ProductID
		item.ProductID = &id
	}
	if line.VariantID != nil {
		id := *line.VariantID
		item.VariantID = &id
		item.VariantValue = optional(line.VariantValue)
	}
	return item
}

func decrementTarget(line LineItem) inventory.Target {
	name := line.Name
	if line.VariantValue != "" {
		name = fmt.Sprintf("%s (%s)", line.Name, line.VariantValue)
	}
	if line.VariantID != nil {
		return inventory.Target{Kind: inventory.TargetVariant, ID: *line.VariantID, DisplayName: name}
	}
	return inventory.Target{Kind: inventory.TargetProduct, ID: line.ProductID, DisplayName: name}
}

func submittedPayload(orderID int64, number string, snapshot Snapshot) payloads.OrderSubmitted {
	items := make([]payloads.OrderSubmittedItem, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		items = append(items, payloads.OrderSubmittedItem{
			Name:         line.Name,
			VariantValue: optional(line.VariantValue),
			Quantity:     line.Quantity,
			UnitPrice:    line.Price,
			TotalPrice:   line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	payload := payloads.OrderSubmitted{
		OrderID:        orderID,
		OrderNumber:    number,
		CustomerName:   strings.TrimSpace(snapshot.CustomerInfo.Name),
		CustomerPhone:  strings.TrimSpace(snapshot.CustomerInfo.Phone),
		CustomerLine:   optional(snapshot.CustomerInfo.LineID),
		StoreName:      optional(snapshot.CustomerInfo.StoreName),
		StoreNumber:    optional(snapshot.CustomerInfo.StoreNumber),
		ShippingMethod: snapshot.ShippingMethod,
		Items:          items,
		Subtotal:       snapshot.Totals.Subtotal,
		ShippingFee:    snapshot.Totals.Shipping,
		Discount:       snapshot.Totals.Discount,
		Total:          snapshot.Totals.FinalTotal,
	}
	if snapshot.AppliedCoupon != nil {
		payload.CouponCode = optional(snapshot.AppliedCoupon.Coupon.Code)
	}
	return payload
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
