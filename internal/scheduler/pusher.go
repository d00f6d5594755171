package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
	"github.com/chouhanrahul1999/betteruptime-app/internal/repo"
)

// Enqueuer is the slice of the work queue the pusher needs.
type Enqueuer interface {
	Enqueue(ctx context.Context, regionID string, job domain.Job) error
}

// Pusher periodically seeds one probe job per website per region. It never
// deduplicates against unconsumed backlog, so the real check cadence is
// max(interval, backlog drain time).
type Pusher struct {
	Logger   *zap.Logger
	Websites repo.WebsiteStore
	Queue    Enqueuer
	Regions  []string
	Interval time.Duration
}

func NewPusher(
	logger *zap.Logger,
	ws repo.WebsiteStore,
	q Enqueuer,
	regions []string,
	interval time.Duration,
) *Pusher {
	if interval <= 0 {
		interval = 3 * time.Minute
	}
	return &Pusher{
		Logger:   logger,
		Websites: ws,
		Queue:    q,
		Regions:  regions,
		Interval: interval,
	}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled.
func (p *Pusher) Run(ctx context.Context) {
	t := time.NewTicker(p.Interval)
	defer t.Stop()

	p.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			p.Logger.Info("pusher_stopped")
			return
		case <-t.C:
			p.runOnce(ctx)
		}
	}
}

// runOnce enumerates websites and enqueues one job per website per region.
// No error is fatal: a failed cycle is logged and the next tick retries.
func (p *Pusher) runOnce(ctx context.Context) {
	websites, err := p.Websites.List(ctx)
	if err != nil {
		p.Logger.Warn("pusher_list_error", zap.Error(err))
		return
	}
	if len(websites) == 0 {
		return
	}

	enqueued := 0
	for _, region := range p.Regions {
		for _, w := range websites {
			job := domain.Job{WebsiteID: w.ID, URL: w.URL}
			if err := p.Queue.Enqueue(ctx, region, job); err != nil {
				p.Logger.Warn("pusher_enqueue_error",
					zap.String("region", region),
					zap.String("website_id", string(w.ID)),
					zap.Error(err),
				)
				continue
			}
			enqueued++
		}
	}

	p.Logger.Info("pusher_cycle",
		zap.Int("websites", len(websites)),
		zap.Int("regions", len(p.Regions)),
		zap.Int("enqueued", enqueued),
	)
}
