package admins

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/pkg/auth"
	"github.com/hazolabs/storefront-backend/pkg/config"
	"github.com/hazolabs/storefront-backend/pkg/db"
	"github.com/hazolabs/storefront-backend/pkg/db/models"
	"github.com/hazolabs/storefront-backend/pkg/enums"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "storefront", ExpirationMinutes: 60}
}

// low-cost argon parameters keep the suite fast
func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	cfg := config.DBConfig{
		Path:         filepath.Join(t.TempDir(), "admins_test.db"),
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 1,
	}
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().AutoMigrate(
		&models.Admin{},
		&models.Product{},
		&models.Coupon{},
		&models.Announcement{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	logg := logger.New(logger.Options{ServiceName: "admins-test", Output: io.Discard})
	svc, err := NewService(client.DB(), testJWTConfig(), testPasswordConfig(), logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, client.DB()
}

func TestAuthenticateIssuesValidToken(t *testing.T) {
	svc, _ := newService(t)

	if _, err := svc.Create(context.Background(), "boss", "hunter22"); err != nil {
		t.Fatalf("create: %v", err)
	}

	session, err := svc.Authenticate(context.Background(), "boss", "hunter22")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	claims, err := auth.ParseAdminToken(testJWTConfig(), session.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Username != "boss" || claims.AdminID != session.Admin.ID {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.Create(context.Background(), "boss", "hunter22"); err != nil {
		t.Fatalf("create: %v", err)
	}

	for name, attempt := range map[string][2]string{
		"wrong password": {"boss", "wrong"},
		"unknown user":   {"nobody", "hunter22"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), attempt[0], attempt[1])
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
		})
	}
}

func TestCreateEnforcesPasswordLengthAndUniqueness(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), "boss", "short")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for short password, got %v", err)
	}

	if _, err := svc.Create(context.Background(), "boss", "hunter22"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = svc.Create(context.Background(), "boss", "hunter23")
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate username, got %v", err)
	}
}

func TestChangeOwnPasswordRequiresCurrent(t *testing.T) {
	svc, _ := newService(t)
	admin, err := svc.Create(context.Background(), "boss", "hunter22")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.ChangeOwnPassword(context.Background(), admin.ID, "wrong", "newpassword")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for wrong current password, got %v", err)
	}

	if err := svc.ChangeOwnPassword(context.Background(), admin.ID, "hunter22", "newpassword"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "boss", "newpassword"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "boss", "hunter22"); err == nil {
		t.Fatal("old password must stop working")
	}
}

func TestDeleteGuardsSelf(t *testing.T) {
	svc, _ := newService(t)
	boss, _ := svc.Create(context.Background(), "boss", "hunter22")
	helper, _ := svc.Create(context.Background(), "helper", "hunter22")

	err := svc.Delete(context.Background(), boss.ID, boss.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for self delete, got %v", err)
	}

	if err := svc.Delete(context.Background(), boss.ID, helper.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != boss.ID {
		t.Fatalf("unexpected admins %+v", rows)
	}
}

func TestEnsureBootstrapOnlyOnEmptyTable(t *testing.T) {
	svc, _ := newService(t)
	cfg := config.BootstrapConfig{AdminUsername: "root", AdminPassword: "bootstrap1"}

	if err := svc.EnsureBootstrap(context.Background(), cfg); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "root", "bootstrap1"); err != nil {
		t.Fatalf("bootstrap login: %v", err)
	}

	cfg.AdminUsername = "second"
	if err := svc.EnsureBootstrap(context.Background(), cfg); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	rows, _ := svc.List(context.Background())
	if len(rows) != 1 {
		t.Fatalf("bootstrap must not add to a populated table, got %d admins", len(rows))
	}
}

func TestDashboardAggregates(t *testing.T) {
	svc, conn := newService(t)

	for i, p := range []models.Product{
		{Name: "Mango Ice", Category: "pods", Price: decimal.NewFromInt(390), Stock: 3, IsActive: true},
		{Name: "Grape Soda", Category: "pods", Price: decimal.NewFromInt(350), Stock: 50, IsActive: true},
		{Name: "Old Device", Category: "devices", Price: decimal.NewFromInt(990), Stock: 2, IsActive: false},
	} {
		row := p
		if err := conn.Create(&row).Error; err != nil {
			t.Fatalf("seed product %d: %v", i, err)
		}
	}
	if err := conn.Create(&models.Coupon{
		Code:          "SAVE10",
		DiscountType:  enums.CouponTypeFixed,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	}).Error; err != nil {
		t.Fatalf("seed coupon: %v", err)
	}

	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.TotalProducts != 3 || stats.ActiveProducts != 2 {
		t.Fatalf("unexpected product counts %+v", stats)
	}
	if stats.TotalCoupons != 1 || stats.ActiveCoupons != 1 {
		t.Fatalf("unexpected coupon counts %+v", stats)
	}
	// only the active product under 10 units qualifies
	if len(stats.LowStockProducts) != 1 || stats.LowStockProducts[0].Name != "Mango Ice" {
		t.Fatalf("unexpected low stock %+v", stats.LowStockProducts)
	}
	if len(stats.ProductsByCategory) != 2 || stats.ProductsByCategory[0].Label != "pods" {
		t.Fatalf("unexpected category histogram %+v", stats.ProductsByCategory)
	}
}
