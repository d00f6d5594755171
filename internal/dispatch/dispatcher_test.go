package dispatch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
	"github.com/chouhanrahul1999/betteruptime-app/internal/notify"
	"github.com/chouhanrahul1999/betteruptime-app/internal/repo/memory"
)

func downEvent() domain.StatusEvent {
	return domain.StatusEvent{
		Type:         domain.EventWebsiteDown,
		WebsiteID:    "w1",
		UserID:       "u1",
		URL:          "https://bad.example",
		ResponseTime: 900,
		RegionID:     "india",
		Timestamp:    1700000000000,
	}
}

func TestDispatcher_UpEventProducesNothing(t *testing.T) {
	store := memory.New()
	store.AddIntegration(domain.Integration{UserID: "u1", Type: domain.IntegrationWebhook, Enabled: true,
		Config: map[string]string{"webhookUrl": "http://unused.example"}})

	d := New(zap.NewNop(), store, store, notify.NewRegistry(notify.SMTPConfig{}), time.Second)

	ev := downEvent()
	ev.Type = domain.EventWebsiteUp
	if err := d.Handle(context.Background(), ev); err != nil {
		t.Fatalf("handle err: %v", err)
	}
	if n := len(store.DeliveryLogs()); n != 0 {
		t.Fatalf("up event must not dispatch, got %d log rows", n)
	}
}

func TestDispatcher_FanOutWithIsolation(t *testing.T) {
	// One reachable webhook, one dead slack URL: exactly one SENT and one
	// FAILED row, and the webhook must be attempted regardless of slack.
	var webhookHits int
	var mu sync.Mutex
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		webhookHits++
		mu.Unlock()
		w.WriteHeader(200)
	}))
	defer ok.Close()

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	store := memory.New()
	// Slack first so a failure there has the chance to wrongly abort the rest.
	store.AddIntegration(domain.Integration{ID: "i-slack", UserID: "u1", Type: domain.IntegrationSlack,
		Enabled: true, Config: map[string]string{"webhookUrl": deadURL}})
	store.AddIntegration(domain.Integration{ID: "i-hook", UserID: "u1", Type: domain.IntegrationWebhook,
		Enabled: true, Config: map[string]string{"webhookUrl": ok.URL}})

	d := New(zap.NewNop(), store, store, notify.NewRegistry(notify.SMTPConfig{}), 2*time.Second)
	if err := d.Handle(context.Background(), downEvent()); err != nil {
		t.Fatalf("handle err: %v", err)
	}

	logs := store.DeliveryLogs()
	if len(logs) != 2 {
		t.Fatalf("want 2 delivery log rows, got %d", len(logs))
	}
	byID := map[string]domain.DeliveryLog{}
	for _, l := range logs {
		byID[l.IntegrationID] = l
	}
	if got := byID["i-slack"]; got.Status != domain.DeliveryFailed || got.ErrorMessage == "" {
		t.Fatalf("slack row should be FAILED with a message, got %+v", got)
	}
	if got := byID["i-hook"]; got.Status != domain.DeliverySent || got.ErrorMessage != "" {
		t.Fatalf("webhook row should be SENT, got %+v", got)
	}
	if webhookHits != 1 {
		t.Fatalf("webhook must be attempted despite slack failure, hits=%d", webhookHits)
	}
	for _, l := range logs {
		if l.EventType != domain.EventWebsiteDown {
			t.Fatalf("log row should carry the event type, got %q", l.EventType)
		}
		if !strings.Contains(l.Payload, "https://bad.example") {
			t.Fatalf("log payload should embed the event, got %q", l.Payload)
		}
	}
}

func TestDispatcher_UnknownTypeLoggedFailed(t *testing.T) {
	store := memory.New()
	store.AddIntegration(domain.Integration{ID: "i-sms", UserID: "u1", Type: "SMS", Enabled: true})

	d := New(zap.NewNop(), store, store, notify.NewRegistry(notify.SMTPConfig{}), time.Second)
	if err := d.Handle(context.Background(), downEvent()); err != nil {
		t.Fatalf("handle err: %v", err)
	}

	logs := store.DeliveryLogs()
	if len(logs) != 1 || logs[0].Status != domain.DeliveryFailed {
		t.Fatalf("unknown type should produce one FAILED row, got %+v", logs)
	}
	if !strings.Contains(logs[0].ErrorMessage, "SMS") {
		t.Fatalf("error should name the type, got %q", logs[0].ErrorMessage)
	}
}

func TestDispatcher_NoEnabledIntegrations(t *testing.T) {
	store := memory.New()
	store.AddIntegration(domain.Integration{ID: "i-off", UserID: "u1", Type: domain.IntegrationWebhook,
		Enabled: false, Config: map[string]string{"webhookUrl": "http://unused.example"}})

	d := New(zap.NewNop(), store, store, notify.NewRegistry(notify.SMTPConfig{}), time.Second)
	if err := d.Handle(context.Background(), downEvent()); err != nil {
		t.Fatalf("handle err: %v", err)
	}
	if n := len(store.DeliveryLogs()); n != 0 {
		t.Fatalf("disabled integrations must not be attempted, got %d rows", n)
	}
}

func TestDispatcher_EmailUnreachableIsFailedRow(t *testing.T) {
	store := memory.New()
	store.AddIntegration(domain.Integration{ID: "i-mail", UserID: "u1", Type: domain.IntegrationEmail,
		Enabled: true, Config: map[string]string{"email": "owner@example.com"}})

	// Nothing listens on port 1; the SMTP dial fails fast.
	reg := notify.NewRegistry(notify.SMTPConfig{Host: "127.0.0.1", Port: 1, From: "alerts@example.com"})
	d := New(zap.NewNop(), store, store, reg, 2*time.Second)
	if err := d.Handle(context.Background(), downEvent()); err != nil {
		t.Fatalf("handle err: %v", err)
	}

	logs := store.DeliveryLogs()
	if len(logs) != 1 {
		t.Fatalf("want 1 delivery log row, got %d", len(logs))
	}
	if logs[0].Status != domain.DeliveryFailed || logs[0].ErrorMessage == "" {
		t.Fatalf("unreachable SMTP should yield FAILED with message, got %+v", logs[0])
	}
}

type failingIntegrations struct{}

func (failingIntegrations) ListEnabled(ctx context.Context, userID string) ([]domain.Integration, error) {
	return nil, errors.New("store down")
}

func TestDispatcher_ListErrorSurfaces(t *testing.T) {
	store := memory.New()
	d := New(zap.NewNop(), failingIntegrations{}, store, notify.NewRegistry(notify.SMTPConfig{}), time.Second)
	if err := d.Handle(context.Background(), downEvent()); err == nil {
		t.Fatal("want error when integrations cannot be listed")
	}
}
