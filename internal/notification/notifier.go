// Package notification delivers order receipts. The POS server either sends them
// directly or enqueues them in the outbox, from where they travel over Kafka to the
// notification worker.
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fjod/go_pos/internal/domain"
)

// EventOrderCompleted is the outbox event type and Kafka header value for receipts.
const EventOrderCompleted = "OrderCompleted"

type OutboxWriter interface {
	EnqueueEvent(ctx context.Context, aggregateID, eventType string, payload []byte) error
}

// OutboxNotifier records the receipt in the outbox table for the poller to publish.
type OutboxNotifier struct {
	outbox OutboxWriter
}

func NewOutboxNotifier(outbox OutboxWriter) *OutboxNotifier {
	return &OutboxNotifier{outbox: outbox}
}

func (n *OutboxNotifier) Notify(ctx context.Context, email string, summary domain.OrderSummary) error {
	summary.Email = email
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal order summary: %w", err)
	}
	if err := n.outbox.EnqueueEvent(ctx, summary.OrderID, EventOrderCompleted, payload); err != nil {
		return fmt.Errorf("enqueue notification for order %s: %w", summary.OrderID, err)
	}
	return nil
}

// DirectNotifier sends through the mailer in-process. Used with the in-memory backend.
type DirectNotifier struct {
	mailer Mailer
}

func NewDirectNotifier(mailer Mailer) *DirectNotifier {
	return &DirectNotifier{mailer: mailer}
}

func (n *DirectNotifier) Notify(ctx context.Context, email string, summary domain.OrderSummary) error {
	summary.Email = email
	return n.mailer.Send(ctx, summary)
}
