package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/pkg/db"
	"github.com/hazolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

type PageContentInput struct {
	PageKey  string          `json:"page_key"`
	Title    string          `json:"title"`
	Content  json.RawMessage `json:"content"`
	Metadata json.RawMessage `json:"metadata"`
	IsActive *bool           `json:"is_active"`
}

type PageService struct {
	db   *gorm.DB
	logg *logger.Logger
}

func NewPageService(conn *gorm.DB, logg *logger.Logger) (*PageService, error) {
	if conn == nil {
		return nil, fmt.Errorf("db is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &PageService{db: conn, logg: logg}, nil
}

func (s *PageService) ListActive(ctx context.Context) ([]models.PageContent, error) {
	var rows []models.PageContent
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("page_key ASC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pages")
	}
	return rows, nil
}

func (s *PageService) ListAll(ctx context.Context) ([]models.PageContent, error) {
	var rows []models.PageContent
	err := s.db.WithContext(ctx).
		Order("page_key ASC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pages")
	}
	return rows, nil
}

func (s *PageService) GetByKey(ctx context.Context, key string) (*models.PageContent, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "page key is required")
	}
	var row models.PageContent
	err := s.db.WithContext(ctx).
		Where("page_key = ? AND is_active = ?", key, true).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load page")
	}
	return &row, nil
}

func (s *PageService) Create(ctx context.Context, input PageContentInput) (*models.PageContent, error) {
	if err := validatePageInput(input); err != nil {
		return nil, err
	}
	row := &models.PageContent{
		PageKey:  strings.TrimSpace(input.PageKey),
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		Metadata: input.Metadata,
		IsActive: true,
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if db.IsUniqueViolation(err, "page_contents.page_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "page key already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create page")
	}
	return row, nil
}

func (s *PageService) Update(ctx context.Context, id int64, input PageContentInput) (*models.PageContent, error) {
	if err := validatePageInput(input); err != nil {
		return nil, err
	}
	row, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	row.PageKey = strings.TrimSpace(input.PageKey)
	row.Title = strings.TrimSpace(input.Title)
	row.Content = input.Content
	row.Metadata = input.Metadata
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		if db.IsUniqueViolation(err, "page_contents.page_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "page key already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update page")
	}
	return row, nil
}

func (s *PageService) Delete(ctx context.Context, id int64) error {
	if _, err := s.findByID(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.PageContent{}, id).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete page")
	}
	return nil
}

func (s *PageService) findByID(ctx context.Context, id int64) (*models.PageContent, error) {
	var row models.PageContent
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load page")
	}
	return &row, nil
}

func validatePageInput(input PageContentInput) error {
	if strings.TrimSpace(input.PageKey) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "page key is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if len(input.Content) > 0 && !json.Valid(input.Content) {
		return pkgerrors.New(pkgerrors.CodeValidation, "content must be valid JSON")
	}
	if len(input.Metadata) > 0 && !json.Valid(input.Metadata) {
		return pkgerrors.New(pkgerrors.CodeValidation, "metadata must be valid JSON")
	}
	return nil
}
