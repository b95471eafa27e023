package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSummary() domain.OrderSummary {
	return domain.OrderSummary{
		OrderID:      uuid.NewString(),
		CustomerName: "Anita Kumar",
		Items: []domain.OrderItem{
			{ProductID: "p1", ProductName: "Cotton Shirt", Quantity: 2, UnitPrice: decimal.NewFromInt(100), TaxRate: decimal.NewFromInt(12)},
		},
		Subtotal:      decimal.NewFromInt(200),
		Discount:      decimal.NewFromInt(20),
		Tax:           decimal.NewFromInt(24),
		Total:         decimal.NewFromInt(204),
		Currency:      domain.DefaultCurrency,
		PaymentMethod: domain.PaymentMethodCard,
		TransactionID: "TXN-1-ABCDEFGHI",
		CreatedAt:     time.Now().UTC(),
	}
}

func TestOutboxNotifier_Enqueues(t *testing.T) {
	outbox := &MockOutbox{}
	n := NewOutboxNotifier(outbox)
	summary := testSummary()

	require.NoError(t, n.Notify(context.Background(), "anita@example.com", summary))

	require.Len(t, outbox.Events, 1)
	event := outbox.Events[0]
	assert.Equal(t, summary.OrderID, event.AggregateID)
	assert.Equal(t, EventOrderCompleted, event.EventType)

	var decoded domain.OrderSummary
	require.NoError(t, json.Unmarshal(event.Payload, &decoded))
	assert.Equal(t, "anita@example.com", decoded.Email)
	assert.True(t, decoded.Total.Equal(decimal.NewFromInt(204)))
	assert.Len(t, decoded.Items, 1)
}

func TestOutboxNotifier_EnqueueError(t *testing.T) {
	n := NewOutboxNotifier(&MockOutbox{EnqueueErr: errors.New("db down")})

	err := n.Notify(context.Background(), "a@example.com", testSummary())
	assert.Error(t, err)
}

func TestDirectNotifier_SendsThroughMailer(t *testing.T) {
	mailer := &MockMailer{}
	n := NewDirectNotifier(mailer)

	require.NoError(t, n.Notify(context.Background(), "priya@example.com", testSummary()))
	require.Equal(t, 1, mailer.SentCount())
	assert.Equal(t, "priya@example.com", mailer.Sent[0].Email)
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(slog.New(slog.NewJSONHandler(&buf, nil)))
	summary := testSummary()
	summary.Email = "anita@example.com"

	require.NoError(t, m.Send(context.Background(), summary))

	out := buf.String()
	assert.Contains(t, out, "sending order confirmation email")
	assert.Contains(t, out, `"to":"anita@example.com"`)
	assert.Contains(t, out, "₹204.00")
	assert.Contains(t, out, `"items":1`)
}

func TestLogMailer_CancelledContext(t *testing.T) {
	m := NewLogMailer(discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Send(ctx, testSummary()), context.Canceled)
}
