package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomail "gopkg.in/gomail.v2"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Email delivers down alerts over SMTP to config["email"].
type Email struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmail(cfg SMTPConfig) *Email {
	return &Email{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (e *Email) Send(ctx context.Context, config map[string]string, event domain.StatusEvent) error {
	to := config["email"]
	if to == "" {
		return errors.New("email: missing email in integration config")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Website Down Alert: %s", event.URL))
	m.SetBody("text/html", emailBody(event))

	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("email: %w", err)
	}
	return nil
}

func emailBody(event domain.StatusEvent) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #dc2626;">Website Down Alert</h2>
  <div style="background: #fee2e2; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Website:</strong> %s</p>
    <p><strong>Status:</strong> Down</p>
    <p><strong>Region:</strong> %s</p>
    <p><strong>Time:</strong> %s</p>
    <p><strong>Response Time:</strong> %dms</p>
  </div>
  <p style="color: #666;">This is an automated alert from your uptime monitoring system.</p>
</div>`,
		event.URL, event.RegionID, eventTime(event).Format(time.RFC1123), event.ResponseTime)
}
