package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/pkg/db/models"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListActive(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *CategoryRepository) ListAll(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Order("display_order ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("name = ?", name).
		Count(&n).Error
	return n > 0, err
}

// NameOrSlugTaken reports a clash with another category; excludeID skips the
// row being updated.
func (r *CategoryRepository) NameOrSlugTaken(ctx context.Context, name, slug string, excludeID int64) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("name = ? OR slug = ?", name, slug)
	if excludeID > 0 {
		q = q.Where("id != ?", excludeID)
	}
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, id).Error
}

// Stats counts products per category by name reference.
func (r *CategoryRepository) Stats(ctx context.Context) ([]CategoryStat, error) {
	var rows []CategoryStat
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("categories.id, categories.name, categories.slug, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.category = categories.name").
		Group("categories.id").
		Order("categories.display_order ASC, categories.id ASC").
		Scan(&rows).Error
	return rows, err
}
