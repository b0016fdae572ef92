package db

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/pkg/config"
)

func testConfig(t *testing.T) config.DBConfig {
	t.Helper()
	return config.DBConfig{
		Path:         filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}

func TestDSNIncludesPragmas(t *testing.T) {
	dsn := DSN(config.DBConfig{Path: "data/store.db", BusyTimeout: 5 * time.Second})

	if !strings.HasPrefix(dsn, "file:data/store.db?") {
		t.Fatalf("unexpected dsn prefix: %s", dsn)
	}
	for _, want := range []string{"_foreign_keys=on", "_journal_mode=WAL", "_busy_timeout=5000"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn missing %s: %s", want, dsn)
		}
	}
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	client, err := New(context.Background(), testConfig(t), nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer client.Close()

	if err := client.Exec(context.Background(), "CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT)").Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	err = client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec("INSERT INTO things (name) VALUES (?)", "kept").Error
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	var count int64
	if err := client.Raw(context.Background(), "SELECT COUNT(*) FROM things").Scan(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client, err := New(context.Background(), testConfig(t), nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer client.Close()

	if err := client.Exec(context.Background(), "CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT)").Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	boom := errors.New("boom")
	err = client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Exec("INSERT INTO things (name) VALUES (?)", "discarded").Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var count int64
	if err := client.Raw(context.Background(), "SELECT COUNT(*) FROM things").Scan(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback, got %d rows", count)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: coupons.code")
	if !IsUniqueViolation(err, "coupons.code") {
		t.Fatal("expected unique violation match")
	}
	if IsUniqueViolation(err, "admins.username") {
		t.Fatal("did not expect match for other column")
	}
	if IsUniqueViolation(errors.New("FOREIGN KEY constraint failed"), "") {
		t.Fatal("did not expect match for fk error")
	}
}
