package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hazolabs/storefront-backend/pkg/config"
	"github.com/hazolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hazolabs/storefront-backend/pkg/errors"
	"github.com/hazolabs/storefront-backend/pkg/logger"
	"github.com/hazolabs/storefront-backend/pkg/metrics"
)

const channelTelegram = "telegram"

// SettingsFetcher supplies notification credentials at delivery time, so
// token or chat id edits in the admin panel apply to the very next message.
type SettingsFetcher interface {
	Value(ctx context.Context, key string) (string, error)
}

// TelegramSink posts order summaries to a Telegram chat. An unconfigured
// sink (missing token or chat id) skips silently; the storefront works fine
// without notifications.
type TelegramSink struct {
	cfg      config.TelegramConfig
	settings SettingsFetcher
	client   *http.Client
	logg     *logger.Logger
	metrics  *metrics.NotifierMetrics
}

func NewTelegramSink(cfg config.TelegramConfig, settings SettingsFetcher, logg *logger.Logger, m *metrics.NotifierMetrics) (*TelegramSink, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings fetcher is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("telegram api base url is required")
	}
	return &TelegramSink{
		cfg:      cfg,
		settings: settings,
		client:   &http.Client{Timeout: cfg.RequestTimeout},
		logg:     logg,
		metrics:  m,
	}, nil
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send delivers one Markdown message. Returns nil when the sink is not
// configured so callers treat that as success.
func (s *TelegramSink) Send(ctx context.Context, text string) error {
	token, err := s.settings.Value(ctx, models.SettingTelegramBotToken)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load telegram token")
	}
	chatID, err := s.settings.Value(ctx, models.SettingTelegramChatID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load telegram chat id")
	}
	if token == "" || chatID == "" {
		s.metrics.IncSkipped(channelTelegram)
		s.logg.Info(ctx, "telegram sink not configured, skipping notification")
		return nil
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode telegram request")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.cfg.APIBaseURL, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build telegram request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.metrics.IncFailed(channelTelegram)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "telegram request failed")
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var parsed sendMessageResponse
	_ = json.Unmarshal(raw, &parsed)

	if resp.StatusCode != http.StatusOK || !parsed.OK {
		s.metrics.IncFailed(channelTelegram)
		msg := parsed.Description
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("telegram rejected message: %s", msg))
	}

	s.metrics.IncDelivered(channelTelegram)
	return nil
}
