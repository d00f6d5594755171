package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kgo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/chouhanrahul1999/betteruptime-app/internal/domain"
)

// TopicWebsiteEvents carries every StatusEvent, up and down.
const TopicWebsiteEvents = "website.events"

const writeTimeout = 3 * time.Second

// Producer publishes status events. At-least-once, no ordering guarantee
// across partitions; events for the same website share a key so they land
// on the same partition.
type Producer struct {
	writer *kgo.Writer
	log    *zap.Logger
}

func NewProducer(brokers []string, topic string, log *zap.Logger) *Producer {
	w := &kgo.Writer{
		Addr:         kgo.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kgo.LeastBytes{},
		RequiredAcks: kgo.RequireOne,
	}
	return &Producer{writer: w, log: log}
}

func (p *Producer) Close() error { return p.writer.Close() }

func (p *Producer) Publish(ctx context.Context, event domain.StatusEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	cctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(cctx, kgo.Message{
		Key:   []byte(event.WebsiteID),
		Value: b,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// Handler processes one delivered event. A non-nil error is logged and the
// message is still committed; there is no dead-letter queue.
type Handler func(ctx context.Context, event domain.StatusEvent) error

// Consumer reads status events with a consumer group and manual commits.
type Consumer struct {
	reader *kgo.Reader
	log    *zap.Logger
}

func NewConsumer(brokers []string, topic, groupID string, log *zap.Logger) *Consumer {
	r := kgo.NewReader(kgo.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // manual commits
	})
	return &Consumer{reader: r, log: log}
}

func (c *Consumer) Close() error { return c.reader.Close() }

// Run fetches messages until ctx is cancelled, invoking handler once per
// message. Offsets are committed after the handler returns, whether or not
// it errored: a message the handler cannot process is unrecoverable by
// design and must not wedge the group. A handler error never crashes the
// consumer.
func (c *Consumer) Run(ctx context.Context, handler Handler) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("fetch: %w", err)
		}

		var event domain.StatusEvent
		if err := json.Unmarshal(m.Value, &event); err != nil {
			c.log.Warn("event_unmarshal_failed",
				zap.String("topic", m.Topic),
				zap.Int64("offset", m.Offset),
				zap.Error(err),
			)
		} else if err := handler(ctx, event); err != nil {
			c.log.Error("event_handler_failed",
				zap.String("type", event.Type),
				zap.String("website_id", string(event.WebsiteID)),
				zap.Error(err),
			)
		}

		if err := c.commit(ctx, m); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("commit: %w", err)
		}
	}
}

func (c *Consumer) commit(ctx context.Context, m kgo.Message) error {
	cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return c.reader.CommitMessages(cctx, m)
}
