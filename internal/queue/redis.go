package queue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
)

const streamPrefix = "betteruptime:website:"

// Entry is one queue entry as read by a consumer: the stream entry id used
// for acknowledgment plus the decoded job.
type Entry struct {
	ID  string
	Job domain.Job
}

// Queue is the per-region durable work queue, backed by one Redis stream per
// region with a consumer group named after the region. Delivery is
// at-least-once: entries read but never acked stay in the group's pending
// list. There is no re-claim of pending entries from a dead consumer yet; a
// stalled worker orphans its in-flight batch until manual intervention.
type Queue struct {
	client *redis.Client
	log    *zap.Logger
}

func New(ctx context.Context, redisURL string, log *zap.Logger) (*Queue, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Queue{client: client, log: log}, nil
}

func (q *Queue) Close() error {
	return q.client.Close()
}

func streamName(regionID string) string {
	return streamPrefix + regionID
}

// Enqueue appends one job to the region's stream.
func (q *Queue) Enqueue(ctx context.Context, regionID string, job domain.Job) error {
	err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName(regionID),
		Values: map[string]interface{}{
			"url": job.URL,
			"id":  string(job.WebsiteID),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", regionID, err)
	}
	return nil
}

// EnsureGroup creates the region's consumer group at the start of the
// stream, creating the stream if needed. Idempotent: an existing group is
// left untouched, its read position included.
func (q *Queue) EnsureGroup(ctx context.Context, regionID string) error {
	err := q.client.XGroupCreateMkStream(ctx, streamName(regionID), regionID, "0").Err()
	if err != nil {
		if strings.Contains(err.Error(), "BUSYGROUP") {
			q.log.Debug("consumer_group_exists", zap.String("region", regionID))
			return nil
		}
		return fmt.Errorf("xgroup create %s: %w", regionID, err)
	}
	q.log.Info("consumer_group_created", zap.String("region", regionID))
	return nil
}

// ReadBatch reads up to maxCount undelivered entries for this consumer,
// blocking up to block when the stream is empty. An empty batch with a nil
// error means the block timeout elapsed with nothing to do.
func (q *Queue) ReadBatch(ctx context.Context, regionID, consumerID string, maxCount int64, block time.Duration) ([]Entry, error) {
	res, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    regionID,
		Consumer: consumerID,
		Streams:  []string{streamName(regionID), ">"},
		Count:    maxCount,
		Block:    block,
	}).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("xreadgroup %s: %w", regionID, err)
	}

	var out []Entry
	for _, stream := range res {
		for _, msg := range stream.Messages {
			job, err := jobFromValues(msg.Values)
			if err != nil {
				// A malformed entry can never be processed; ack it so it
				// does not sit pending forever.
				q.log.Warn("queue_entry_malformed",
					zap.String("region", regionID),
					zap.String("entry_id", msg.ID),
					zap.Error(err),
				)
				q.client.XAck(ctx, streamName(regionID), regionID, msg.ID)
				continue
			}
			out = append(out, Entry{ID: msg.ID, Job: job})
		}
	}
	return out, nil
}

// AckBatch acknowledges processed entries, removing them from the group's
// pending list.
func (q *Queue) AckBatch(ctx context.Context, regionID string, entryIDs []string) error {
	if len(entryIDs) == 0 {
		return nil
	}
	if err := q.client.XAck(ctx, streamName(regionID), regionID, entryIDs...).Err(); err != nil {
		return fmt.Errorf("xack %s: %w", regionID, err)
	}
	return nil
}

func jobFromValues(values map[string]interface{}) (domain.Job, error) {
	url, ok := values["url"].(string)
	if !ok || url == "" {
		return domain.Job{}, fmt.Errorf("missing url field")
	}
	id, ok := values["id"].(string)
	if !ok || id == "" {
		return domain.Job{}, fmt.Errorf("missing id field")
	}
	return domain.Job{WebsiteID: domain.WebsiteID(id), URL: url}, nil
}
