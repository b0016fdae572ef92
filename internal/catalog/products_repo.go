package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/pkg/db/models"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

func (r *ProductRepository) listQuery(ctx context.Context, filters Filters, activeOnly bool) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Product{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if filters.Category != "" {
		q = q.Where("category = ?", filters.Category)
	}
	if filters.Brand != "" {
		q = q.Where("brand = ?", filters.Brand)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	return q
}

func (r *ProductRepository) List(ctx context.Context, filters Filters, activeOnly bool) ([]models.Product, int64, error) {
	var total int64
	if err := r.listQuery(ctx, filters, activeOnly).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.listQuery(ctx, filters, activeOnly)
	if activeOnly {
		q = q.Preload("Variants", "is_active = ?", true)
	} else {
		q = q.Preload("Variants").
			Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC, id ASC") })
	}

	var rows []models.Product
	err := q.Order("created_at DESC, id DESC").
		Limit(filters.Page.Limit).
		Offset(filters.Page.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64, activeOnly bool) (*models.Product, error) {
	q := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC, id ASC") })
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var product models.Product
	if err := q.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}

func (r *ProductRepository) SetStock(ctx context.Context, id int64, stock int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("stock", stock)
	return res.RowsAffected, res.Error
}

func (r *ProductRepository) SetImageURL(ctx context.Context, id int64, url *string) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("image_url", url).Error
}

// Brands aggregates active product counts per brand, skipping products with
// no brand set.
func (r *ProductRepository) Brands(ctx context.Context) ([]BrandCount, error) {
	var rows []BrandCount
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("brand AS brand, COUNT(*) AS count").
		Where("is_active = ? AND brand IS NOT NULL AND brand != ''", true).
		Group("brand").
		Order("brand ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *ProductRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category = ?", category).
		Count(&n).Error
	return n, err
}

func (r *ProductRepository) FindVariant(ctx context.Context, id int64) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *ProductRepository) CreateVariant(ctx context.Context, variant *models.ProductVariant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

func (r *ProductRepository) UpdateVariant(ctx context.Context, variant *models.ProductVariant) error {
	return r.db.WithContext(ctx).Save(variant).Error
}

func (r *ProductRepository) DeleteVariant(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.ProductVariant{}, id).Error
}

func (r *ProductRepository) ListImages(ctx context.Context, productID int64) ([]models.ProductImage, error) {
	var rows []models.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("display_order ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ProductRepository) FindImage(ctx context.Context, id int64) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ProductRepository) CreateImage(ctx context.Context, image *models.ProductImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *ProductRepository) UpdateImage(ctx context.Context, image *models.ProductImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *ProductRepository) DeleteImage(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.ProductImage{}, id).Error
}

func (r *ProductRepository) DemoteOtherImages(ctx context.Context, productID, keepID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductImage{}).
		Where("product_id = ? AND id != ?", productID, keepID).
		Update("is_primary", false).Error
}

func (r *ProductRepository) SetImageOrder(ctx context.Context, id int64, displayOrder int) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductImage{}).
		Where("id = ?", id).
		Update("display_order", displayOrder).Error
}
