package content

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hazolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

type HomepageSectionInput struct {
	Title      *string `json:"title"`
	Subtitle   *string `json:"subtitle"`
	ImageURL   *string `json:"image_url"`
	ButtonText *string `json:"button_text"`
	ButtonLink *string `json:"button_link"`
	IsActive   *bool   `json:"is_active"`
}

// defaultHomepageSections are the sections the storefront always knows how to
// render; reset restores these.
var defaultHomepageSections = map[string]models.HomepageSection{
	"hero": {
		Section:    "hero",
		Title:      ptr("Welcome to the store"),
		Subtitle:   ptr("New arrivals every week"),
		ButtonText: ptr("Shop now"),
		ButtonLink: ptr("/products"),
		IsActive:   true,
	},
	"hero1": {
		Section:  "hero1",
		Title:    ptr("Featured collection"),
		IsActive: true,
	},
	"hero2": {
		Section:  "hero2",
		Title:    ptr("Seasonal picks"),
		IsActive: true,
	},
}

type HomepageService struct {
	db   *gorm.DB
	logg *logger.Logger
}

func NewHomepageService(conn *gorm.DB, logg *logger.Logger) (*HomepageService, error) {
	if conn == nil {
		return nil, fmt.Errorf("db is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &HomepageService{db: conn, logg: logg}, nil
}

// ActiveMap returns active sections keyed by section name, the shape the SPA
// consumes directly.
func (s *HomepageService) ActiveMap(ctx context.Context) (map[string]models.HomepageSection, error) {
	var rows []models.HomepageSection
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load homepage sections")
	}
	out := make(map[string]models.HomepageSection, len(rows))
	for _, row := range rows {
		out[row.Section] = row
	}
	return out, nil
}

func (s *HomepageService) ListAll(ctx context.Context) ([]models.HomepageSection, error) {
	var rows []models.HomepageSection
	err := s.db.WithContext(ctx).
		Order("section ASC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list homepage sections")
	}
	return rows, nil
}

// Upsert writes the section by name, creating it on first save.
func (s *HomepageService) Upsert(ctx context.Context, section string, input HomepageSectionInput) (*models.HomepageSection, error) {
	section = strings.TrimSpace(section)
	if section == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "section name is required")
	}

	row := models.HomepageSection{
		Section:    section,
		Title:      input.Title,
		Subtitle:   input.Subtitle,
		ImageURL:   input.ImageURL,
		ButtonText: input.ButtonText,
		ButtonLink: input.ButtonLink,
		IsActive:   true,
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "section"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "subtitle", "image_url", "button_text", "button_link", "is_active", "updated_at",
			}),
		}).
		Create(&row).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert homepage section")
	}

	var saved models.HomepageSection
	if err := s.db.WithContext(ctx).Where("section = ?", section).First(&saved).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload homepage section")
	}
	return &saved, nil
}

// Reset restores a known section to its shipped default.
func (s *HomepageService) Reset(ctx context.Context, section string) (*models.HomepageSection, error) {
	def, ok := defaultHomepageSections[strings.TrimSpace(section)]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no default for section %q", section))
	}
	return s.Upsert(ctx, def.Section, HomepageSectionInput{
		Title:      def.Title,
		Subtitle:   def.Subtitle,
		ImageURL:   def.ImageURL,
		ButtonText: def.ButtonText,
		ButtonLink: def.ButtonLink,
	})
}

func ptr(s string) *string {
	return &s
}
