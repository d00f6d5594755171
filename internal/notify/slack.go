package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
)

// Slack POSTs a Block Kit message to an incoming-webhook URL.
type Slack struct {
	Client *http.Client
}

func NewSlack() *Slack {
	return &Slack{
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *Slack) Send(ctx context.Context, config map[string]string, event domain.StatusEvent) error {
	url := config["webhookUrl"]
	if url == "" {
		return errors.New("slack: missing webhookUrl in integration config")
	}

	payload := map[string]interface{}{
		"blocks": []interface{}{
			map[string]interface{}{
				"type": "header",
				"text": map[string]interface{}{
					"type": "plain_text",
					"text": "Website Down Alert",
				},
			},
			map[string]interface{}{
				"type": "section",
				"fields": []interface{}{
					map[string]string{"type": "mrkdwn", "text": "*Website:*\n" + event.URL},
					map[string]string{"type": "mrkdwn", "text": "*Status:*\nDown"},
					map[string]string{"type": "mrkdwn", "text": "*Region:*\n" + event.RegionID},
					map[string]string{"type": "mrkdwn", "text": fmt.Sprintf("*Response Time:*\n%dms", event.ResponseTime)},
				},
			},
			map[string]interface{}{
				"type": "context",
				"elements": []interface{}{
					map[string]string{"type": "mrkdwn", "text": "Time: " + eventTime(event).Format(time.RFC1123)},
				},
			},
		},
	}

	if err := postJSON(ctx, s.Client, url, payload); err != nil {
		return fmt.Errorf("slack: %w", err)
	}
	return nil
}
