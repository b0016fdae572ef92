package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hazolabs/storefront-backend/pkg/db/models"
	"github.com/hazolabs/storefront-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.OutboxEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestEmitStoresEnvelope(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	svc := NewService(repo, nil)

	err := conn.Transaction(func(tx *gorm.DB) error {
		return svc.Emit(context.Background(), tx, DomainEvent{
			EventType:     enums.OutboxEventOrderSubmitted,
			AggregateType: enums.OutboxAggregateOrder,
			AggregateID:   42,
			Version:       1,
			Data:          map[string]string{"orderNumber": "ORD-2026-000042"},
		})
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	rows, err := repo.FetchUnpublished(10, 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rows))
	}
	if rows[0].AggregateID != 42 {
		t.Fatalf("unexpected aggregate id %d", rows[0].AggregateID)
	}

	var envelope PayloadEnvelope
	if err := json.Unmarshal(rows[0].Payload, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if envelope.EventID == "" {
		t.Fatal("expected event id")
	}
	var data map[string]string
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if data["orderNumber"] != "ORD-2026-000042" {
		t.Fatalf("unexpected data %v", data)
	}
}

func TestEmitRequiresTransaction(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)), nil)
	if err := svc.Emit(context.Background(), nil, DomainEvent{}); err == nil {
		t.Fatal("expected error without transaction")
	}
}

func TestMarkPublishedRemovesFromFetch(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	svc := NewService(repo, nil)

	_ = conn.Transaction(func(tx *gorm.DB) error {
		return svc.Emit(context.Background(), tx, DomainEvent{
			EventType:     enums.OutboxEventOrderSubmitted,
			AggregateType: enums.OutboxAggregateOrder,
			AggregateID:   1,
			Data:          map[string]string{},
		})
	})

	rows, err := repo.FetchUnpublished(10, 0)
	if err != nil || len(rows) != 1 {
		t.Fatalf("fetch: rows=%d err=%v", len(rows), err)
	}

	if err := repo.MarkPublished(rows[0].ID); err != nil {
		t.Fatalf("mark published: %v", err)
	}

	rows, err = repo.FetchUnpublished(10, 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no unpublished events, got %d", len(rows))
	}
}

func TestMarkFailedCountsAttemptsAndCapsFetch(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	svc := NewService(repo, nil)

	_ = conn.Transaction(func(tx *gorm.DB) error {
		return svc.Emit(context.Background(), tx, DomainEvent{
			EventType:     enums.OutboxEventOrderSubmitted,
			AggregateType: enums.OutboxAggregateOrder,
			AggregateID:   1,
			Data:          map[string]string{},
		})
	})

	rows, _ := repo.FetchUnpublished(10, 0)
	if len(rows) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rows))
	}
	id := rows[0].ID

	for i := 0; i < 3; i++ {
		if err := repo.MarkFailed(id, errors.New("telegram unreachable")); err != nil {
			t.Fatalf("mark failed: %v", err)
		}
	}

	var row models.OutboxEvent
	if err := conn.First(&row, id).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.AttemptCount != 3 {
		t.Fatalf("expected 3 attempts, got %d", row.AttemptCount)
	}
	if row.LastError == nil || *row.LastError != "telegram unreachable" {
		t.Fatalf("unexpected last error %v", row.LastError)
	}

	rows, _ = repo.FetchUnpublished(10, 3)
	if len(rows) != 0 {
		t.Fatal("expected event to be excluded once attempts reach the cap")
	}
}
