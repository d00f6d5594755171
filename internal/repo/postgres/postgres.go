package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
	"github.com/chouhanrahul1999/betteruptime-app/internal/repo"
)

var _ repo.WebsiteStore = (*Store)(nil)
var _ repo.TickStore = (*Store)(nil)
var _ repo.IntegrationStore = (*Store)(nil)
var _ repo.DeliveryLogStore = (*Store)(nil)

type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// ---- WebsiteStore ----

func (s *Store) List(ctx context.Context) ([]domain.Website, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, url, user_id, created_at
		   FROM website
		  ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list websites: %w", err)
	}
	defer rows.Close()

	var out []domain.Website
	for rows.Next() {
		var (
			id        string
			url       string
			userID    string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &url, &userID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan website: %w", err)
		}
		out = append(out, domain.Website{
			ID:        domain.WebsiteID(id),
			URL:       url,
			UserID:    userID,
			CreatedAt: createdAt,
		})
	}
	return out, rows.Err()
}

func (s *Store) FindOwner(ctx context.Context, id domain.WebsiteID) (string, error) {
	var userID string
	err := s.pool.QueryRow(ctx,
		`SELECT user_id FROM website WHERE id=$1`,
		string(id),
	).Scan(&userID)
	if err != nil {
		return "", fmt.Errorf("find owner of %s: %w", id, err)
	}
	return userID, nil
}

// ---- TickStore ----

func (s *Store) CreateTick(ctx context.Context, t *domain.Tick) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO website_tick
		   (id, website_id, region_id, status, response_time_ms, created_at)
		 VALUES
		   ($1, $2, $3, $4, $5, $6)`,
		t.ID, string(t.WebsiteID), t.RegionID, string(t.Status), t.ResponseTimeMs, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tick: %w", err)
	}
	return nil
}

// ---- IntegrationStore ----

func (s *Store) ListEnabled(ctx context.Context, userID string) ([]domain.Integration, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, type, config, enabled
		   FROM integration
		  WHERE user_id=$1 AND enabled=true`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}
	defer rows.Close()

	var out []domain.Integration
	for rows.Next() {
		var (
			in        domain.Integration
			typ       string
			configRaw []byte
		)
		if err := rows.Scan(&in.ID, &in.UserID, &typ, &configRaw, &in.Enabled); err != nil {
			return nil, fmt.Errorf("scan integration: %w", err)
		}
		in.Type = domain.IntegrationType(typ)
		if len(configRaw) > 0 {
			if err := json.Unmarshal(configRaw, &in.Config); err != nil {
				// A malformed config should not hide the user's other
				// integrations; the dispatcher will log it as FAILED.
				s.log.Warn("integration_config_unmarshal",
					zap.String("integration_id", in.ID),
					zap.Error(err),
				)
				in.Config = map[string]string{}
			}
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// ---- DeliveryLogStore ----

func (s *Store) CreateDeliveryLog(ctx context.Context, e *domain.DeliveryLog) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.SentAt.IsZero() {
		e.SentAt = time.Now().UTC()
	}
	var errMsg *string
	if e.ErrorMessage != "" {
		errMsg = &e.ErrorMessage
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO notification_log
		   (id, event_type, integration_id, status, payload, error_message, sent_at)
		 VALUES
		   ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.EventType, e.IntegrationID, string(e.Status), e.Payload, errMsg, e.SentAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery log: %w", err)
	}
	return nil
}
