package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
)

// Discord POSTs a single red embed to a Discord webhook URL.
type Discord struct {
	Client *http.Client
}

func NewDiscord() *Discord {
	return &Discord{
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *Discord) Send(ctx context.Context, config map[string]string, event domain.StatusEvent) error {
	url := config["webhookUrl"]
	if url == "" {
		return errors.New("discord: missing webhookUrl in integration config")
	}

	ts := eventTime(event)
	payload := map[string]interface{}{
		"embeds": []interface{}{
			map[string]interface{}{
				"title": "Website Down Alert",
				"color": 0xff0000,
				"fields": []interface{}{
					map[string]interface{}{"name": "Website", "value": event.URL, "inline": true},
					map[string]interface{}{"name": "Status", "value": "Down", "inline": true},
					map[string]interface{}{"name": "Region", "value": event.RegionID, "inline": true},
					map[string]interface{}{"name": "Response Time", "value": fmt.Sprintf("%dms", event.ResponseTime), "inline": true},
					map[string]interface{}{"name": "Time", "value": ts.Format(time.RFC1123)},
				},
				"timestamp": ts.Format(time.RFC3339),
			},
		},
	}

	if err := postJSON(ctx, d.Client, url, payload); err != nil {
		return fmt.Errorf("discord: %w", err)
	}
	return nil
}
