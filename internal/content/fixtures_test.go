package content

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/pkg/config"
	"github.com/hazolabs/storefront-backend/pkg/db"
	"github.com/hazolabs/storefront-backend/pkg/db/models"
	"github.com/hazolabs/storefront-backend/pkg/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.DBConfig{
		Path:         filepath.Join(t.TempDir(), "content_test.db"),
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 1,
	}
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().AutoMigrate(
		&models.Announcement{},
		&models.HomepageSection{},
		&models.FooterSection{},
		&models.PageContent{},
		&models.SystemSetting{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return client.DB()
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "content-test", Output: io.Discard})
}
