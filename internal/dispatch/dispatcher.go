package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
	"github.com/chouhanrahul1999/betteruptime-app/internal/notify"
	"github.com/chouhanrahul1999/betteruptime-app/internal/repo"
)

// GroupID is the dispatcher's consumer group on the status topic.
const GroupID = "notification-group"

// Dispatcher fans a down-event out to the owner's enabled integrations.
// Channels are isolated from each other: one adapter failing is logged as a
// FAILED delivery and never prevents attempting the rest.
type Dispatcher struct {
	Logger       *zap.Logger
	Integrations repo.IntegrationStore
	Logs         repo.DeliveryLogStore
	Adapters     notify.Registry
	SendTimeout  time.Duration
}

func New(
	logger *zap.Logger,
	integrations repo.IntegrationStore,
	logs repo.DeliveryLogStore,
	adapters notify.Registry,
	sendTimeout time.Duration,
) *Dispatcher {
	if sendTimeout <= 0 {
		sendTimeout = 30 * time.Second
	}
	return &Dispatcher{
		Logger:       logger,
		Integrations: integrations,
		Logs:         logs,
		Adapters:     adapters,
		SendTimeout:  sendTimeout,
	}
}

// Handle processes one status event. Up events are received and dropped;
// recovery notifications are not a feature yet.
func (d *Dispatcher) Handle(ctx context.Context, event domain.StatusEvent) error {
	if event.Type != domain.EventWebsiteDown {
		d.Logger.Debug("event_ignored",
			zap.String("type", event.Type),
			zap.String("website_id", string(event.WebsiteID)),
		)
		return nil
	}

	integrations, err := d.Integrations.ListEnabled(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("list integrations for %s: %w", event.UserID, err)
	}
	d.Logger.Info("dispatching_down_event",
		zap.String("website_id", string(event.WebsiteID)),
		zap.String("url", event.URL),
		zap.Int("integrations", len(integrations)),
	)

	for _, in := range integrations {
		d.deliver(ctx, in, event)
	}
	return nil
}

// deliver attempts one integration and always records the outcome.
func (d *Dispatcher) deliver(ctx context.Context, in domain.Integration, event domain.StatusEvent) {
	err := d.send(ctx, in, event)

	entry := &domain.DeliveryLog{
		EventType:     event.Type,
		IntegrationID: in.ID,
		Status:        domain.DeliverySent,
		Payload:       marshalPayload(event),
		SentAt:        time.Now().UTC(),
	}
	if err != nil {
		entry.Status = domain.DeliveryFailed
		entry.ErrorMessage = err.Error()
		d.Logger.Warn("delivery_failed",
			zap.String("integration_id", in.ID),
			zap.String("type", string(in.Type)),
			zap.Error(err),
		)
	} else {
		d.Logger.Info("delivery_sent",
			zap.String("integration_id", in.ID),
			zap.String("type", string(in.Type)),
		)
	}

	// The audit trail must stay complete; a log-write failure is logged but
	// must not abort the remaining integrations.
	if err := d.Logs.CreateDeliveryLog(ctx, entry); err != nil {
		d.Logger.Error("delivery_log_write_failed",
			zap.String("integration_id", in.ID),
			zap.Error(err),
		)
	}
}

func (d *Dispatcher) send(ctx context.Context, in domain.Integration, event domain.StatusEvent) error {
	adapter, err := d.Adapters.Lookup(in.Type)
	if err != nil {
		return err
	}
	cctx, cancel := context.WithTimeout(ctx, d.SendTimeout)
	defer cancel()
	return adapter.Send(cctx, in.Config, event)
}

func marshalPayload(event domain.StatusEvent) string {
	b, err := json.Marshal(event)
	if err != nil {
		return ""
	}
	return string(b)
}
