package cart

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/pkg/config"
	"github.com/hazolabs/storefront-backend/pkg/db"
	"github.com/hazolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	cfg := config.DBConfig{
		Path:         filepath.Join(t.TempDir(), "cart_test.db"),
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 1,
	}
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	logg := logger.New(logger.Options{ServiceName: "cart-test", Output: io.Discard})
	svc, err := NewService(client.DB(), logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, client.DB()
}

func seedProduct(t *testing.T, conn *gorm.DB, name string, price int64) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Category: "pods",
		Stock:    10,
		IsActive: true,
	}
	if err := conn.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func seedVariant(t *testing.T, conn *gorm.DB, productID int64, modifier int64) *models.ProductVariant {
	t.Helper()
	v := &models.ProductVariant{
		ProductID:     productID,
		VariantType:   "size",
		VariantValue:  "30ml",
		PriceModifier: decimal.NewFromInt(modifier),
		Stock:         10,
		IsActive:      true,
	}
	if err := conn.Create(v).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	return v
}

func TestAddAndPriceWithVariantModifier(t *testing.T) {
	svc, conn := newService(t)
	p := seedProduct(t, conn, "Mango Ice", 390)
	v := seedVariant(t, conn, p.ID, 20)

	cart, err := svc.Add(context.Background(), "sess-1", AddInput{ProductID: p.ID, VariantID: &v.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	line := cart.Items[0]
	if !line.UnitPrice.Equal(decimal.NewFromInt(410)) {
		t.Fatalf("expected unit price 410, got %s", line.UnitPrice)
	}
	if !line.LineTotal.Equal(decimal.NewFromInt(820)) {
		t.Fatalf("expected line total 820, got %s", line.LineTotal)
	}
	if !cart.TotalAmount.Equal(decimal.NewFromInt(820)) || cart.ItemCount != 2 {
		t.Fatalf("unexpected totals %+v", cart)
	}
}

func TestAddMergesSameProductAndVariant(t *testing.T) {
	svc, conn := newService(t)
	p := seedProduct(t, conn, "Mango Ice", 390)

	if _, err := svc.Add(context.Background(), "sess-1", AddInput{ProductID: p.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart, err := svc.Add(context.Background(), "sess-1", AddInput{ProductID: p.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add again: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("expected merged line, got %d rows", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", cart.Items[0].Quantity)
	}
}

func TestAddKeepsVariantLinesSeparate(t *testing.T) {
	svc, conn := newService(t)
	p := seedProduct(t, conn, "Mango Ice", 390)
	v := seedVariant(t, conn, p.ID, 20)

	if _, err := svc.Add(context.Background(), "sess-1", AddInput{ProductID: p.ID, Quantity: 1}); err != nil {
		t.Fatalf("add base: %v", err)
	}
	cart, err := svc.Add(context.Background(), "sess-1", AddInput{ProductID: p.ID, VariantID: &v.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add variant: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected separate lines, got %d", len(cart.Items))
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	svc, conn := newService(t)
	p := seedProduct(t, conn, "Mango Ice", 390)

	if _, err := svc.Add(context.Background(), "sess-1", AddInput{ProductID: p.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	other, err := svc.Get(context.Background(), "sess-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(other.Items) != 0 {
		t.Fatalf("expected empty cart for other session, got %d", len(other.Items))
	}
}

func TestUpdateQuantityEnforcesMinimum(t *testing.T) {
	svc, conn := newService(t)
	p := seedProduct(t, conn, "Mango Ice", 390)

	cart, err := svc.Add(context.Background(), "sess-1", AddInput{ProductID: p.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := cart.Items[0].ID

	_, err = svc.UpdateQuantity(context.Background(), "sess-1", itemID, 0)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	updated, err := svc.UpdateQuantity(context.Background(), "sess-1", itemID, 5)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", updated.Items[0].Quantity)
	}

	_, err = svc.UpdateQuantity(context.Background(), "other-session", itemID, 2)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found across sessions, got %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	svc, conn := newService(t)
	p := seedProduct(t, conn, "Mango Ice", 390)
	other := seedProduct(t, conn, "Grape Soda", 350)

	cart, err := svc.Add(context.Background(), "sess-1", AddInput{ProductID: p.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(context.Background(), "sess-1", AddInput{ProductID: other.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}

	after, err := svc.Remove(context.Background(), "sess-1", cart.Items[0].ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(after.Items) != 1 {
		t.Fatalf("expected 1 remaining line, got %d", len(after.Items))
	}

	if err := svc.Clear(context.Background(), "sess-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	emptied, err := svc.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(emptied.Items) != 0 || !emptied.TotalAmount.IsZero() {
		t.Fatalf("expected empty cart, got %+v", emptied)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Add(context.Background(), "sess-1", AddInput{ProductID: 404, Quantity: 1})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestInactiveProductDroppedFromPricing(t *testing.T) {
	svc, conn := newService(t)
	p := seedProduct(t, conn, "Mango Ice", 390)

	if _, err := svc.Add(context.Background(), "sess-1", AddInput{ProductID: p.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := conn.Model(p).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	cart, err := svc.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("deactivated product must drop out of the cart view, got %+v", cart.Items)
	}
}
