package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
)

// Webhook POSTs a generic JSON envelope to config["webhookUrl"].
type Webhook struct {
	Client *http.Client
}

func NewWebhook() *Webhook {
	return &Webhook{
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

type webhookPayload struct {
	Event        string `json:"event"`
	URL          string `json:"url"`
	Status       string `json:"status"`
	Region       string `json:"region"`
	ResponseTime int64  `json:"responseTime"`
	Timestamp    int64  `json:"timestamp"`
}

func (w *Webhook) Send(ctx context.Context, config map[string]string, event domain.StatusEvent) error {
	url := config["webhookUrl"]
	if url == "" {
		return errors.New("webhook: missing webhookUrl in integration config")
	}
	payload := webhookPayload{
		Event:        event.Type,
		URL:          event.URL,
		Status:       "down",
		Region:       event.RegionID,
		ResponseTime: event.ResponseTime,
		Timestamp:    event.Timestamp,
	}
	if err := postJSON(ctx, w.Client, url, payload); err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	return nil
}
