package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

type FooterSectionInput struct {
	SectionType  string  `json:"section_type"`
	Title        string  `json:"title"`
	Content      *string `json:"content"`
	LinkURL      *string `json:"link_url"`
	DisplayOrder int     `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

type FooterService struct {
	db   *gorm.DB
	logg *logger.Logger
}

func NewFooterService(conn *gorm.DB, logg *logger.Logger) (*FooterService, error) {
	if conn == nil {
		return nil, fmt.Errorf("db is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &FooterService{db: conn, logg: logg}, nil
}

func (s *FooterService) ListActive(ctx context.Context) ([]models.FooterSection, error) {
	var rows []models.FooterSection
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list footer sections")
	}
	return rows, nil
}

func (s *FooterService) ListAll(ctx context.Context) ([]models.FooterSection, error) {
	var rows []models.FooterSection
	err := s.db.WithContext(ctx).
		Order("display_order ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list footer sections")
	}
	return rows, nil
}

func (s *FooterService) Create(ctx context.Context, input FooterSectionInput) (*models.FooterSection, error) {
	if err := validateFooterInput(input); err != nil {
		return nil, err
	}
	row := &models.FooterSection{
		SectionType:  strings.TrimSpace(input.SectionType),
		Title:        strings.TrimSpace(input.Title),
		Content:      input.Content,
		LinkURL:      input.LinkURL,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create footer section")
	}
	return row, nil
}

func (s *FooterService) Update(ctx context.Context, id int64, input FooterSectionInput) (*models.FooterSection, error) {
	if err := validateFooterInput(input); err != nil {
		return nil, err
	}
	row, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	row.SectionType = strings.TrimSpace(input.SectionType)
	row.Title = strings.TrimSpace(input.Title)
	row.Content = input.Content
	row.LinkURL = input.LinkURL
	row.DisplayOrder = input.DisplayOrder
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update footer section")
	}
	return row, nil
}

func (s *FooterService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.FooterSection{}, id).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete footer section")
	}
	return nil
}

func (s *FooterService) find(ctx context.Context, id int64) (*models.FooterSection, error) {
	var row models.FooterSection
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "footer section not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load footer section")
	}
	return &row, nil
}

func validateFooterInput(input FooterSectionInput) error {
	if strings.TrimSpace(input.SectionType) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "section type is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	return nil
}
