package notification

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/fjod/go_pos/internal/metrics"
	"github.com/segmentio/kafka-go"
)

const maxAttempts = 3

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer turns order notifications into sent receipts, at most one per order.
type Consumer struct {
	reader   MessageReader
	receipts ReceiptStore
	mailer   Mailer
	log      *slog.Logger
	metrics  *metrics.Metrics
	backoff  time.Duration
}

func NewConsumer(receipts ReceiptStore, mailer Mailer, log *slog.Logger, m *metrics.Metrics, topic, groupID string, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{
		reader:   reader,
		receipts: receipts,
		mailer:   mailer,
		log:      log,
		metrics:  m,
		backoff:  500 * time.Millisecond,
	}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.log.Error("error closing kafka reader", "error", err)
	}
}

func (c *Consumer) processMessage(ctx context.Context) {
	m, err := c.reader.FetchMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		c.log.ErrorContext(ctx, "error reading message", "error", err)
		return
	}

	if err := c.handleWithRetry(ctx, m); err != nil {
		if ctx.Err() != nil {
			return
		}
		// offsets commit cumulatively, so a stuck message cannot block the partition
		c.log.ErrorContext(ctx, "giving up on notification", "offset", m.Offset, "error", err)
	}

	if err := c.reader.CommitMessages(ctx, m); err != nil {
		c.log.ErrorContext(ctx, "failed to commit message", "offset", m.Offset, "error", err)
	}
}

func (c *Consumer) handleWithRetry(ctx context.Context, m kafka.Message) error {
	var err error
	backoff := c.backoff
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = c.handle(ctx, m); err == nil {
			return nil
		}
		c.log.WarnContext(ctx, "notification attempt failed", "attempt", attempt, "offset", m.Offset, "error", err)
		if attempt == maxAttempts {
			break
		}
		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// handle returns an error only when the message should be retried.
func (c *Consumer) handle(ctx context.Context, m kafka.Message) error {
	if eventType := header(m, "event_type"); eventType != "" && eventType != EventOrderCompleted {
		c.log.DebugContext(ctx, "skipping unrelated event", "event_type", eventType)
		return nil
	}

	var summary domain.OrderSummary
	if err := json.Unmarshal(m.Value, &summary); err != nil {
		c.log.ErrorContext(ctx, "error parsing message", "offset", m.Offset, "error", err)
		return nil
	}
	if summary.OrderID == "" || summary.Email == "" {
		c.log.WarnContext(ctx, "notification without order id or email", "offset", m.Offset)
		return nil
	}

	alreadySent, err := c.receipts.Reserve(ctx, NewReceipt(summary))
	if err != nil {
		return err
	}
	if alreadySent {
		c.metrics.ObserveNotification("duplicate")
		c.log.InfoContext(ctx, "receipt already sent, skipping", "order_id", summary.OrderID)
		return nil
	}

	if err := c.mailer.Send(ctx, summary); err != nil {
		c.metrics.ObserveNotification("failed")
		return err
	}

	if err := c.receipts.MarkSent(ctx, summary.OrderID); err != nil {
		c.log.WarnContext(ctx, "receipt sent but not marked", "order_id", summary.OrderID, "error", err)
	}
	c.metrics.ObserveNotification("sent")
	return nil
}

func header(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
