package repo

import (
	"context"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
)

// Ports (interfaces) — the schema and its migrations live with the
// management API; the pipeline only reads and writes through these.

type WebsiteStore interface {
	// List returns every monitored website with its owner.
	List(ctx context.Context) ([]domain.Website, error)
	// FindOwner returns the owning user's id for a website.
	FindOwner(ctx context.Context, id domain.WebsiteID) (string, error)
}

type TickStore interface {
	// CreateTick appends one probe result. Ticks are never updated.
	CreateTick(ctx context.Context, t *domain.Tick) error
}

type IntegrationStore interface {
	// ListEnabled returns the enabled integrations for a user.
	ListEnabled(ctx context.Context, userID string) ([]domain.Integration, error)
}

type DeliveryLogStore interface {
	// CreateDeliveryLog appends one delivery attempt outcome.
	CreateDeliveryLog(ctx context.Context, e *domain.DeliveryLog) error
}
