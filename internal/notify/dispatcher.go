package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hazolabs/storefront-backend/pkg/config"
	"github.com/hazolabs/storefront-backend/pkg/db/models"
	"github.com/hazolabs/storefront-backend/pkg/enums"
	"github.com/hazolabs/storefront-backend/pkg/logger"
	"github.com/hazolabs/storefront-backend/pkg/outbox"
	"github.com/hazolabs/storefront-backend/pkg/outbox/payloads"
)

// Sender delivers a rendered message to a channel.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Dispatcher drains the outbox: it polls for unpublished events, renders
// them and hands them to the sink, marking each row published or failed.
// Events that keep failing stop being fetched once they hit MaxAttempts.
type Dispatcher struct {
	repo *outbox.Repository
	sink Sender
	cfg  config.OutboxConfig
	logg *logger.Logger
}

func NewDispatcher(repo *outbox.Repository, sink Sender, cfg config.OutboxConfig, logg *logger.Logger) (*Dispatcher, error) {
	if repo == nil {
		return nil, fmt.Errorf("outbox repository is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("sink is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.PollIntervalMS <= 0 {
		cfg.PollIntervalMS = 500
	}
	return &Dispatcher{repo: repo, sink: sink, cfg: cfg, logg: logg}, nil
}

// Run polls until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	interval := time.Duration(d.cfg.PollIntervalMS) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.logg.Info(ctx, "outbox dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.logg.Info(ctx, "outbox dispatcher stopped")
			return
		case <-ticker.C:
			if _, err := d.DispatchPending(ctx); err != nil {
				d.logg.Error(ctx, "outbox poll failed", err)
			}
		}
	}
}

// DispatchPending processes one batch and reports how many events were
// delivered.
func (d *Dispatcher) DispatchPending(ctx context.Context) (int, error) {
	events, err := d.repo.FetchUnpublished(d.cfg.BatchSize, d.cfg.MaxAttempts)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, event := range events {
		logCtx := d.logg.WithFields(ctx, map[string]any{
			"outbox_id":  event.ID,
			"event_type": event.EventType,
		})

		if err := d.dispatch(ctx, event); err != nil {
			d.logg.Error(logCtx, "notification delivery failed", err)
			if markErr := d.repo.MarkFailed(event.ID, err); markErr != nil {
				d.logg.Error(logCtx, "marking outbox event failed", markErr)
			}
			continue
		}
		if err := d.repo.MarkPublished(event.ID); err != nil {
			d.logg.Error(logCtx, "marking outbox event published", err)
			continue
		}
		published++
	}
	return published, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, event models.OutboxEvent) error {
	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(event.Payload, &envelope); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}

	switch event.EventType {
	case enums.OutboxEventOrderSubmitted:
		var order payloads.OrderSubmitted
		if err := json.Unmarshal(envelope.Data, &order); err != nil {
			return fmt.Errorf("decode order payload: %w", err)
		}
		return d.sink.Send(ctx, OrderMessage(order))
	case enums.OutboxEventNotificationTestSent:
		var test payloads.NotificationTest
		if err := json.Unmarshal(envelope.Data, &test); err != nil {
			return fmt.Errorf("decode test payload: %w", err)
		}
		return d.sink.Send(ctx, test.Message)
	default:
		// unknown events are acknowledged, not retried
		logCtx := d.logg.WithField(ctx, "event_type", event.EventType)
		d.logg.Warn(logCtx, "skipping unknown outbox event type")
		return nil
	}
}
