package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
	"github.com/chouhanrahul1999/betteruptime-app/internal/probe"
	"github.com/chouhanrahul1999/betteruptime-app/internal/queue"
	"github.com/chouhanrahul1999/betteruptime-app/internal/repo"
)

// BatchQueue is the slice of the work queue a regional worker consumes.
type BatchQueue interface {
	EnsureGroup(ctx context.Context, regionID string) error
	ReadBatch(ctx context.Context, regionID, consumerID string, maxCount int64, block time.Duration) ([]queue.Entry, error)
	AckBatch(ctx context.Context, regionID string, entryIDs []string) error
}

// Publisher emits status events after their tick is durably recorded.
type Publisher interface {
	Publish(ctx context.Context, event domain.StatusEvent) error
}

// Worker consumes one region's queue, probes each job concurrently, records
// a tick, and publishes a status event per outcome. The whole batch is
// acknowledged only after every job in it resolved; a storage or publish
// failure leaves the batch unacked and stops the worker so a supervisor can
// restart it and the queue can redeliver.
type Worker struct {
	Logger     *zap.Logger
	RegionID   string
	ConsumerID string
	Queue      BatchQueue
	Checker    probe.Checker
	Ticks      repo.TickStore
	Websites   repo.WebsiteStore
	Bus        Publisher
	BatchSize  int64
	Block      time.Duration
}

func New(
	logger *zap.Logger,
	regionID, consumerID string,
	q BatchQueue,
	checker probe.Checker,
	ticks repo.TickStore,
	websites repo.WebsiteStore,
	bus Publisher,
	batchSize int64,
	block time.Duration,
) *Worker {
	if batchSize < 1 {
		batchSize = 5
	}
	if block <= 0 {
		block = 5 * time.Second
	}
	return &Worker{
		Logger:     logger,
		RegionID:   regionID,
		ConsumerID: consumerID,
		Queue:      q,
		Checker:    checker,
		Ticks:      ticks,
		Websites:   websites,
		Bus:        bus,
		BatchSize:  batchSize,
		Block:      block,
	}
}

// Run consumes batches until ctx is cancelled. Any returned error other
// than ctx.Err() means a batch could not be completed and was left unacked.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.Queue.EnsureGroup(ctx, w.RegionID); err != nil {
		return fmt.Errorf("ensure group: %w", err)
	}
	w.Logger.Info("worker_started",
		zap.String("region", w.RegionID),
		zap.String("consumer", w.ConsumerID),
	)

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("worker_stopped", zap.String("region", w.RegionID))
			return ctx.Err()
		default:
		}

		entries, err := w.Queue.ReadBatch(ctx, w.RegionID, w.ConsumerID, w.BatchSize, w.Block)
		if err != nil {
			if ctx.Err() != nil {
				w.Logger.Info("worker_stopped", zap.String("region", w.RegionID))
				return ctx.Err()
			}
			return fmt.Errorf("read batch: %w", err)
		}
		if len(entries) == 0 {
			continue
		}

		if err := w.processBatch(ctx, entries); err != nil {
			// Leave the batch unacked: the entries stay pending and will be
			// redelivered after a restart.
			return fmt.Errorf("process batch: %w", err)
		}

		ids := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		if err := w.Queue.AckBatch(ctx, w.RegionID, ids); err != nil {
			return fmt.Errorf("ack batch: %w", err)
		}
		w.Logger.Debug("batch_done",
			zap.String("region", w.RegionID),
			zap.Int("jobs", len(entries)),
		)
	}
}

// processBatch probes every job concurrently and joins before returning.
// Parallelism is bounded by the batch size itself. The first storage or
// publish error wins; probe down outcomes are never errors.
func (w *Worker) processBatch(ctx context.Context, entries []queue.Entry) error {
	var wg sync.WaitGroup
	errs := make([]error, len(entries))

	for i, e := range entries {
		i, e := i, e
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = w.processJob(ctx, e.Job)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) processJob(ctx context.Context, job domain.Job) error {
	out := w.Checker.Check(ctx, job.URL)

	status := domain.StatusUp
	eventType := domain.EventWebsiteUp
	if !out.Up {
		status = domain.StatusDown
		eventType = domain.EventWebsiteDown
	}

	tick := &domain.Tick{
		WebsiteID:      job.WebsiteID,
		RegionID:       w.RegionID,
		Status:         status,
		ResponseTimeMs: out.ResponseTimeMs,
		CreatedAt:      time.Now().UTC(),
	}
	if err := w.Ticks.CreateTick(ctx, tick); err != nil {
		return fmt.Errorf("create tick for %s: %w", job.WebsiteID, err)
	}

	event := domain.StatusEvent{
		Type:         eventType,
		WebsiteID:    job.WebsiteID,
		URL:          job.URL,
		ResponseTime: out.ResponseTimeMs,
		RegionID:     w.RegionID,
		Timestamp:    tick.CreatedAt.UnixMilli(),
	}
	if status == domain.StatusDown {
		// The dispatcher needs the owner to resolve integrations.
		userID, err := w.Websites.FindOwner(ctx, job.WebsiteID)
		if err != nil {
			return fmt.Errorf("find owner of %s: %w", job.WebsiteID, err)
		}
		event.UserID = userID
	}

	if err := w.Bus.Publish(ctx, event); err != nil {
		return fmt.Errorf("publish %s for %s: %w", eventType, job.WebsiteID, err)
	}

	w.Logger.Debug("website_checked",
		zap.String("region", w.RegionID),
		zap.String("website_id", string(job.WebsiteID)),
		zap.String("status", string(status)),
		zap.Int64("response_time_ms", out.ResponseTimeMs),
		zap.String("reason", out.Reason),
	)
	return nil
}
