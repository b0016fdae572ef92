package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hazolabs/storefront-backend/pkg/config"
	"github.com/hazolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
	"github.com/hazolabs/storefront-backend/pkg/metrics"
)

type fakeSettings map[string]string

func (f fakeSettings) Value(_ context.Context, key string) (string, error) {
	return f[key], nil
}

func testSink(t *testing.T, baseURL string, settings SettingsFetcher) *TelegramSink {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "notify-test", Output: io.Discard})
	m := metrics.NewNotifierMetrics(prometheus.NewRegistry())
	sink, err := NewTelegramSink(config.TelegramConfig{
		APIBaseURL:     baseURL,
		RequestTimeout: 5 * time.Second,
	}, settings, logg, m)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	return sink
}

func TestSendPostsMarkdownMessage(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	sink := testSink(t, server.URL, fakeSettings{
		models.SettingTelegramBotToken: "123:abc",
		models.SettingTelegramChatID:   "-100500",
	})

	if err := sink.Send(context.Background(), "*New order*"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotPath != "/bot123:abc/sendMessage" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotBody.ChatID != "-100500" || gotBody.ParseMode != "Markdown" {
		t.Fatalf("unexpected request %+v", gotBody)
	}
	if !strings.Contains(gotBody.Text, "New order") {
		t.Fatalf("unexpected text %q", gotBody.Text)
	}
}

func TestSendSkipsWhenUnconfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without credentials")
	}))
	defer server.Close()

	cases := map[string]fakeSettings{
		"no token":   {models.SettingTelegramChatID: "-100500"},
		"no chat id": {models.SettingTelegramBotToken: "123:abc"},
		"nothing":    {},
	}
	for name, settings := range cases {
		t.Run(name, func(t *testing.T) {
			sink := testSink(t, server.URL, settings)
			if err := sink.Send(context.Background(), "hello"); err != nil {
				t.Fatalf("unconfigured sink must no-op, got %v", err)
			}
		})
	}
}

func TestSendReportsAPIRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer server.Close()

	sink := testSink(t, server.URL, fakeSettings{
		models.SettingTelegramBotToken: "123:abc",
		models.SettingTelegramChatID:   "-100500",
	})

	err := sink.Send(context.Background(), "hello")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if !strings.Contains(typed.Message(), "chat not found") {
		t.Fatalf("expected api description in message, got %q", typed.Message())
	}
}

func TestSendReportsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	sink := testSink(t, server.URL, fakeSettings{
		models.SettingTelegramBotToken: "123:abc",
		models.SettingTelegramChatID:   "-100500",
	})

	err := sink.Send(context.Background(), "hello")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
