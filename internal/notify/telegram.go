package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
)

// Telegram delivers alerts through the Bot API sendMessage endpoint using
// config["botToken"] and config["chatId"].
type Telegram struct {
	Client *http.Client

	// BaseURL overrides the Bot API host in tests.
	BaseURL string
}

func NewTelegram() *Telegram {
	return &Telegram{
		Client:  &http.Client{Timeout: 10 * time.Second},
		BaseURL: "https://api.telegram.org",
	}
}

func (t *Telegram) Send(ctx context.Context, config map[string]string, event domain.StatusEvent) error {
	token := config["botToken"]
	chatID := config["chatId"]
	if token == "" || chatID == "" {
		return errors.New("telegram: missing botToken or chatId in integration config")
	}

	text := fmt.Sprintf(
		"*Website Down Alert*\n\n*Website:* %s\n*Status:* Down\n*Region:* %s\n*Response Time:* %dms\n*Time:* %s",
		event.URL, event.RegionID, event.ResponseTime, eventTime(event).Format(time.RFC1123),
	)

	payload := map[string]string{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, token)
	if err := postJSON(ctx, t.Client, url, payload); err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	return nil
}
