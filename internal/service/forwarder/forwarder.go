package forwarder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"TgBridge/entity"
	"TgBridge/internal/config"
	"TgBridge/internal/lib/sl"
)

// Forwarder posts normalized records to the configured webhook. One
// attempt per record, bounded by the client timeout, no retry and no
// queue: a failed delivery is logged and forgotten.
type Forwarder struct {
	url    string
	client *http.Client
	log    *slog.Logger
}

func New(conf *config.Config, logger *slog.Logger) *Forwarder {
	return &Forwarder{
		url: conf.Webhook.Url,
		client: &http.Client{
			Timeout: time.Duration(conf.Webhook.TimeoutSeconds) * time.Second,
		},
		log: logger.With(sl.Module("forwarder")),
	}
}

// Enabled reports whether a destination is configured.
func (f *Forwarder) Enabled() bool {
	return f.url != ""
}

// Deliver attempts exactly one POST of the record. With no destination
// configured it returns immediately without touching the network. The
// returned error exists for tests; callers run Deliver on its own
// goroutine and discard it.
func (f *Forwarder) Deliver(ctx context.Context, rec *entity.Record) error {
	if f.url == "" {
		return nil
	}

	deliveryID := uuid.New().String()

	bodyBytes, err := json.Marshal(rec)
	if err != nil {
		f.log.With(sl.Err(err)).Error("marshal record")
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(bodyBytes))
	if err != nil {
		f.log.With(sl.Err(err)).Error("create request")
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-ID", deliveryID)

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.With(
			slog.Int64("message_id", rec.MessageID),
			slog.String("delivery_id", deliveryID),
			sl.Err(err),
		).Error("send webhook")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = fmt.Errorf("webhook responded with %d", resp.StatusCode)
		f.log.With(
			slog.Int64("message_id", rec.MessageID),
			slog.String("delivery_id", deliveryID),
			sl.Err(err),
		).Error("webhook rejected record")
		return err
	}

	f.log.With(
		slog.Int64("message_id", rec.MessageID),
		slog.String("delivery_id", deliveryID),
	).Debug("record delivered")
	return nil
}
