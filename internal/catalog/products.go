package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/pkg/db"
	"github.com/hazolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
	"github.com/hazolabs/storefront-backend/pkg/pagination"
)

type ProductService struct {
	client     *db.Client
	repo       *ProductRepository
	categories *CategoryRepository
	logg       *logger.Logger
}

func NewProductService(client *db.Client, repo *ProductRepository, categories *CategoryRepository, logg *logger.Logger) (*ProductService, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &ProductService{client: client, repo: repo, categories: categories, logg: logg}, nil
}

// List serves the public storefront: active products only, active variants
// preloaded for the price picker.
func (s *ProductService) List(ctx context.Context, filters Filters) ([]models.Product, pagination.Meta, error) {
	filters.Page = filters.Page.Normalize()
	rows, total, err := s.repo.List(ctx, filters, true)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, pagination.MetaFor(filters.Page, total), nil
}

// ListAll serves the back office, including inactive rows and image galleries.
func (s *ProductService) ListAll(ctx context.Context, filters Filters) ([]models.Product, pagination.Meta, error) {
	filters.Page = filters.Page.Normalize()
	rows, total, err := s.repo.List(ctx, filters, false)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, pagination.MetaFor(filters.Page, total), nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.find(ctx, id, true)
}

func (s *ProductService) GetAny(ctx context.Context, id int64) (*models.Product, error) {
	return s.find(ctx, id, false)
}

func (s *ProductService) find(ctx context.Context, id int64, activeOnly bool) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id, activeOnly)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *ProductService) Brands(ctx context.Context) ([]BrandCount, error) {
	rows, err := s.repo.Brands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	return rows, nil
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := s.validateProductInput(ctx, input); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Category:      strings.TrimSpace(input.Category),
		Brand:         input.Brand,
		Stock:         input.Stock,
		ImageURL:      input.ImageURL,
		Badge:         input.Badge,
		IsActive:      true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, input ProductInput) (*models.Product, error) {
	if err := s.validateProductInput(ctx, input); err != nil {
		return nil, err
	}

	product, err := s.GetAny(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Price = input.Price
	product.OriginalPrice = input.OriginalPrice
	product.Category = strings.TrimSpace(input.Category)
	product.Brand = input.Brand
	product.Stock = input.Stock
	product.ImageURL = input.ImageURL
	product.Badge = input.Badge
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return product, nil
}

// Delete removes the product; variants and images go with it through the
// ON DELETE CASCADE constraints.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetAny(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// BatchUpdateStock sets absolute stock levels in one transaction, so a partial
// failure leaves every product at its previous level.
func (s *ProductService) BatchUpdateStock(ctx context.Context, updates []StockUpdate) error {
	if len(updates) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no stock updates provided")
	}
	for i, u := range updates {
		if u.Stock < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("update %d has negative stock", i))
		}
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, u := range updates {
			affected, err := repo.SetStock(ctx, u.ProductID, u.Stock)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update stock")
			}
			if affected == 0 {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", u.ProductID))
			}
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "batch stock update")
	}

	logCtx := s.logg.WithField(ctx, "count", len(updates))
	s.logg.Info(logCtx, "batch stock update applied")
	return nil
}

func (s *ProductService) CreateVariant(ctx context.Context, productID int64, input VariantInput) (*models.ProductVariant, error) {
	if strings.TrimSpace(input.VariantType) == "" || strings.TrimSpace(input.VariantValue) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant type and value are required")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant stock cannot be negative")
	}
	if _, err := s.GetAny(ctx, productID); err != nil {
		return nil, err
	}

	variant := &models.ProductVariant{
		ProductID:     productID,
		VariantType:   strings.TrimSpace(input.VariantType),
		VariantValue:  strings.TrimSpace(input.VariantValue),
		PriceModifier: input.PriceModifier,
		Stock:         input.Stock,
		SKU:           input.SKU,
		IsActive:      true,
	}
	if input.IsActive != nil {
		variant.IsActive = *input.IsActive
	}
	if err := s.repo.CreateVariant(ctx, variant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create variant")
	}
	return variant, nil
}

func (s *ProductService) UpdateVariant(ctx context.Context, id int64, input VariantInput) (*models.ProductVariant, error) {
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant stock cannot be negative")
	}
	variant, err := s.repo.FindVariant(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}

	if v := strings.TrimSpace(input.VariantType); v != "" {
		variant.VariantType = v
	}
	if v := strings.TrimSpace(input.VariantValue); v != "" {
		variant.VariantValue = v
	}
	variant.PriceModifier = input.PriceModifier
	variant.Stock = input.Stock
	variant.SKU = input.SKU
	if input.IsActive != nil {
		variant.IsActive = *input.IsActive
	}
	if err := s.repo.UpdateVariant(ctx, variant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update variant")
	}
	return variant, nil
}

func (s *ProductService) DeleteVariant(ctx context.Context, id int64) error {
	if _, err := s.repo.FindVariant(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}
	if err := s.repo.DeleteVariant(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete variant")
	}
	return nil
}

func (s *ProductService) validateProductInput(ctx context.Context, input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}

	exists, err := s.categories.ExistsByName(ctx, category)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check category")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown category %q", category))
	}
	return nil
}
