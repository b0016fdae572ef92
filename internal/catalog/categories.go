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
)

type CategoryService struct {
	repo     *CategoryRepository
	products *ProductRepository
	logg     *logger.Logger
}

func NewCategoryService(repo *CategoryRepository, products *ProductRepository, logg *logger.Logger) (*CategoryService, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository is required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &CategoryService{repo: repo, products: products, logg: logg}, nil
}

func (s *CategoryService) ListActive(ctx context.Context) ([]models.Category, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, nil
}

func (s *CategoryService) ListAll(ctx context.Context) ([]models.Category, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, nil
}

func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	name, slug, err := normalizeCategoryInput(input)
	if err != nil {
		return nil, err
	}
	taken, err := s.repo.NameOrSlugTaken(ctx, name, slug, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check category uniqueness")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name or slug already in use")
	}

	category := &models.Category{
		Name:         name,
		Slug:         slug,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Create(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "categories.slug") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, input CategoryInput) (*models.Category, error) {
	name, slug, err := normalizeCategoryInput(input)
	if err != nil {
		return nil, err
	}
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	taken, err := s.repo.NameOrSlugTaken(ctx, name, slug, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check category uniqueness")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name or slug already in use")
	}

	category.Name = name
	category.Slug = slug
	category.Description = input.Description
	category.ImageURL = input.ImageURL
	category.DisplayOrder = input.DisplayOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return category, nil
}

// Delete refuses while products still reference the category by name, so the
// storefront never shows orphaned category strings.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	category, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	inUse, err := s.products.CountByCategory(ctx, category.Name)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category usage")
	}
	if inUse > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("category is used by %d products", inUse)).
			WithDetails(map[string]any{"product_count": inUse})
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *CategoryService) Stats(ctx context.Context) ([]CategoryStat, error) {
	rows, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "category stats")
	}
	return rows, nil
}

func (s *CategoryService) find(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

func normalizeCategoryInput(input CategoryInput) (name, slug string, err error) {
	name = strings.TrimSpace(input.Name)
	slug = strings.ToLower(strings.TrimSpace(input.Slug))
	if name == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	if slug == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "category slug is required")
	}
	return name, slug, nil
}
