package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hazolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

// publicSettingKeys is the subset safe to expose to the storefront; Telegram
// credentials never leave the admin surface.
var publicSettingKeys = []string{
	models.SettingFreeShippingThreshold,
	models.SettingHeroImageURL,
	models.SettingShowProductReviews,
	models.SettingShowProductPreview,
}

type SettingsService struct {
	db   *gorm.DB
	logg *logger.Logger
}

func NewSettingsService(conn *gorm.DB, logg *logger.Logger) (*SettingsService, error) {
	if conn == nil {
		return nil, fmt.Errorf("db is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &SettingsService{db: conn, logg: logg}, nil
}

// Value returns the setting's value, or empty string when the key is absent
// or holds NULL. The notifier reads its credentials through this method on
// every delivery, so edits take effect without restarts.
func (s *SettingsService) Value(ctx context.Context, key string) (string, error) {
	var row models.SystemSetting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load setting")
	}
	if row.Value == nil {
		return "", nil
	}
	return *row.Value, nil
}

// PublicMap returns the storefront-safe settings as key -> value.
func (s *SettingsService) PublicMap(ctx context.Context) (map[string]string, error) {
	var rows []models.SystemSetting
	err := s.db.WithContext(ctx).
		Where("key IN ?", publicSettingKeys).
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load public settings")
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.Value != nil {
			out[row.Key] = *row.Value
		} else {
			out[row.Key] = ""
		}
	}
	return out, nil
}

func (s *SettingsService) All(ctx context.Context) ([]models.SystemSetting, error) {
	var rows []models.SystemSetting
	err := s.db.WithContext(ctx).Order("key ASC").Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list settings")
	}
	return rows, nil
}

func (s *SettingsService) Upsert(ctx context.Context, key string, value *string) (*models.SystemSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "setting key is required")
	}

	row := models.SystemSetting{Key: key, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert setting")
	}
	return &row, nil
}

// BatchUpsert writes all pairs in one transaction; the admin settings screen
// saves the whole form at once.
func (s *SettingsService) BatchUpsert(ctx context.Context, values map[string]*string) error {
	if len(values) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no settings provided")
	}
	for key := range values {
		if strings.TrimSpace(key) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "setting key is required")
		}
	}

	rows := make([]models.SystemSetting, 0, len(values))
	for key, value := range values {
		rows = append(rows, models.SystemSetting{Key: strings.TrimSpace(key), Value: value})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "batch upsert settings")
	}

	logCtx := s.logg.WithField(ctx, "count", len(rows))
	s.logg.Info(logCtx, "settings updated")
	return nil
}
