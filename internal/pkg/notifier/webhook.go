package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/exception"
)

// Webhook posts alert content as JSON to a configured URL.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (w *Webhook) Name() string {
	return "webhook"
}

type webhookPayload struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	SentAt  string `json:"sent_at"`
}

func (w *Webhook) Notify(ctx context.Context, subject, body string) error {
	if w.url == "" {
		slog.WarnContext(ctx, "webhook URL not configured, skipping notification",
			slog.String("subject", subject))
		return nil
	}

	payload, err := json.Marshal(webhookPayload{
		Subject: subject,
		Body:    body,
		SentAt:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return exception.ApplicationError{
			Kind:    exception.KindNotification,
			Message: "send webhook alert",
			Cause:   err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return exception.ApplicationError{
			Kind:    exception.KindNotification,
			Message: fmt.Sprintf("webhook returned status %d", resp.StatusCode),
		}
	}

	return nil
}
