package catalog

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hazolabs/storefront-backend/pkg/config"
	"github.com/hazolabs/storefront-backend/pkg/db"
	"github.com/hazolabs/storefront-backend/pkg/db/models"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

type fixture struct {
	client     *db.Client
	products   *ProductService
	categories *CategoryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := config.DBConfig{
		Path:         filepath.Join(t.TempDir(), "catalog_test.db"),
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 1,
	}
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	logg := logger.New(logger.Options{ServiceName: "catalog-test", Output: io.Discard})
	productRepo := NewProductRepository(client.DB())
	categoryRepo := NewCategoryRepository(client.DB())

	products, err := NewProductService(client, productRepo, categoryRepo, logg)
	if err != nil {
		t.Fatalf("product service: %v", err)
	}
	categories, err := NewCategoryService(categoryRepo, productRepo, logg)
	if err != nil {
		t.Fatalf("category service: %v", err)
	}
	return &fixture{client: client, products: products, categories: categories}
}

func (f *fixture) seedCategory(t *testing.T, name, slug string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, Slug: slug, IsActive: true}
	if err := f.client.DB().Create(c).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c
}

func (f *fixture) seedProduct(t *testing.T, name, category string, price int64, active bool) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Category: category,
		Stock:    10,
		IsActive: active,
	}
	if err := f.client.DB().Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}
