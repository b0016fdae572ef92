package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/pkg/db/models"
	"github.com/hazolabs/storefront-backend/pkg/enums"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

type AnnouncementInput struct {
	Title    string                 `json:"title"`
	Content  string                 `json:"content"`
	Type     enums.AnnouncementType `json:"type"`
	IsActive *bool                  `json:"is_active"`
}

type AnnouncementService struct {
	db   *gorm.DB
	logg *logger.Logger
}

func NewAnnouncementService(conn *gorm.DB, logg *logger.Logger) (*AnnouncementService, error) {
	if conn == nil {
		return nil, fmt.Errorf("db is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &AnnouncementService{db: conn, logg: logg}, nil
}

// ListActive serves the storefront banner strip, newest first.
func (s *AnnouncementService) ListActive(ctx context.Context) ([]models.Announcement, error) {
	var rows []models.Announcement
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list announcements")
	}
	return rows, nil
}

func (s *AnnouncementService) ListAll(ctx context.Context) ([]models.Announcement, error) {
	var rows []models.Announcement
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list announcements")
	}
	return rows, nil
}

func (s *AnnouncementService) Create(ctx context.Context, input AnnouncementInput) (*models.Announcement, error) {
	if err := validateAnnouncement(input); err != nil {
		return nil, err
	}
	row := &models.Announcement{
		Title:    strings.TrimSpace(input.Title),
		Content:  strings.TrimSpace(input.Content),
		Type:     input.Type,
		IsActive: true,
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create announcement")
	}
	return row, nil
}

func (s *AnnouncementService) Update(ctx context.Context, id int64, input AnnouncementInput) (*models.Announcement, error) {
	if err := validateAnnouncement(input); err != nil {
		return nil, err
	}
	row, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Title = strings.TrimSpace(input.Title)
	row.Content = strings.TrimSpace(input.Content)
	row.Type = input.Type
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update announcement")
	}
	return row, nil
}

func (s *AnnouncementService) SetActive(ctx context.Context, id int64, active bool) (*models.Announcement, error) {
	row, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(row).Update("is_active", active).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle announcement")
	}
	row.IsActive = active
	return row, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Announcement{}, id).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete announcement")
	}
	return nil
}

func (s *AnnouncementService) find(ctx context.Context, id int64) (*models.Announcement, error) {
	var row models.Announcement
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "announcement not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load announcement")
	}
	return &row, nil
}

func validateAnnouncement(input AnnouncementInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "content is required")
	}
	if !input.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "type must be info, warning or promotion")
	}
	return nil
}
