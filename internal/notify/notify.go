package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
)

// Sender delivers one down-event to one configured channel. Implementations
// are stateless functions of (config, event) and must surface every
// transport failure as an error; the dispatcher classifies SENT vs FAILED
// from the return value alone.
type Sender interface {
	Send(ctx context.Context, config map[string]string, event domain.StatusEvent) error
}

// Registry maps integration types to their channel adapters.
type Registry map[domain.IntegrationType]Sender

// NewRegistry builds the full adapter set. SMTP settings belong to the
// process, not to individual integrations, so the email adapter takes them
// here.
func NewRegistry(smtp SMTPConfig) Registry {
	return Registry{
		domain.IntegrationEmail:    NewEmail(smtp),
		domain.IntegrationWebhook:  NewWebhook(),
		domain.IntegrationSlack:    NewSlack(),
		domain.IntegrationDiscord:  NewDiscord(),
		domain.IntegrationTelegram: NewTelegram(),
	}
}

// Lookup returns the adapter for an integration type.
func (r Registry) Lookup(t domain.IntegrationType) (Sender, error) {
	s, ok := r[t]
	if !ok {
		return nil, fmt.Errorf("no adapter for integration type %q", t)
	}
	return s, nil
}

func postJSON(ctx context.Context, client *http.Client, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func eventTime(event domain.StatusEvent) time.Time {
	return time.UnixMilli(event.Timestamp).UTC()
}
