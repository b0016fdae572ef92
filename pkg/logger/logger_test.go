package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestWithFieldsPropagatesThroughContext(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	ctx := logg.WithFields(context.Background(), map[string]any{
		"order_id": 42,
		"source":   "unit",
	})
	logg.Info(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["order_id"] != float64(42) {
		t.Fatalf("expected order_id field, got %v", entry["order_id"])
	}
	if entry["source"] != "unit" {
		t.Fatalf("expected source field, got %v", entry["source"])
	}
	if entry["service"] != "test" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
}

func TestErrorIncludesStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	logg.Error(context.Background(), "boom", errors.New("broken"))

	out := buf.String()
	if !strings.Contains(out, "broken") {
		t.Fatalf("expected error message in output: %s", out)
	}
	if !strings.Contains(out, "stack") {
		t.Fatalf("expected stack field in output: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	if got := ParseLevel("debug"); got != zerolog.DebugLevel {
		t.Fatalf("expected debug, got %v", got)
	}
	if got := ParseLevel(""); got != zerolog.InfoLevel {
		t.Fatalf("expected info fallback, got %v", got)
	}
	if got := ParseLevel("not-a-level"); got != zerolog.InfoLevel {
		t.Fatalf("expected info fallback for junk, got %v", got)
	}
}
