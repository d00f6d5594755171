package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
	"github.com/chouhanrahul1999/betteruptime-app/internal/repo"
)

var _ repo.WebsiteStore = (*Store)(nil)
var _ repo.TickStore = (*Store)(nil)
var _ repo.IntegrationStore = (*Store)(nil)
var _ repo.DeliveryLogStore = (*Store)(nil)

// Store is an in-memory implementation of the pipeline's store ports,
// used in tests and local runs without a database.
type Store struct {
	mu           sync.RWMutex
	websites     []domain.Website
	ticks        []*domain.Tick
	integrations []domain.Integration
	logs         []*domain.DeliveryLog
}

func New() *Store {
	return &Store{}
}

func (m *Store) AddWebsite(w domain.Website) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	m.websites = append(m.websites, w)
}

func (m *Store) AddIntegration(in domain.Integration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	m.integrations = append(m.integrations, in)
}

func (m *Store) List(ctx context.Context) ([]domain.Website, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Website, len(m.websites))
	copy(out, m.websites)
	return out, nil
}

func (m *Store) FindOwner(ctx context.Context, id domain.WebsiteID) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, w := range m.websites {
		if w.ID == id {
			return w.UserID, nil
		}
	}
	return "", fmt.Errorf("website %s: not found", id)
}

func (m *Store) CreateTick(ctx context.Context, t *domain.Tick) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	cp := *t
	m.ticks = append(m.ticks, &cp)
	return nil
}

func (m *Store) ListEnabled(ctx context.Context, userID string) ([]domain.Integration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Integration
	for _, in := range m.integrations {
		if in.UserID == userID && in.Enabled {
			out = append(out, in)
		}
	}
	return out, nil
}

func (m *Store) CreateDeliveryLog(ctx context.Context, e *domain.DeliveryLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.SentAt.IsZero() {
		e.SentAt = time.Now().UTC()
	}
	cp := *e
	m.logs = append(m.logs, &cp)
	return nil
}

// Ticks returns a copy of all recorded ticks, oldest first.
func (m *Store) Ticks() []domain.Tick {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Tick, 0, len(m.ticks))
	for _, t := range m.ticks {
		out = append(out, *t)
	}
	return out
}

// DeliveryLogs returns a copy of all recorded delivery attempts.
func (m *Store) DeliveryLogs() []domain.DeliveryLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.DeliveryLog, 0, len(m.logs))
	for _, e := range m.logs {
		out = append(out, *e)
	}
	return out
}
