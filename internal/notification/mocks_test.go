package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/fjod/go_pos/internal/repository"
	"github.com/segmentio/kafka-go"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockOutbox implements OutboxWriter and OutboxStore for testing
type MockOutbox struct {
	EnqueueErr error
	FetchErr   error
	MarkErr    error

	mu        sync.Mutex
	Events    []*repository.OutboxEvent
	Processed []int64
}

func (m *MockOutbox) EnqueueEvent(_ context.Context, aggregateID, eventType string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EnqueueErr != nil {
		return m.EnqueueErr
	}
	m.Events = append(m.Events, &repository.OutboxEvent{
		ID:          int64(len(m.Events) + 1),
		AggregateID: aggregateID,
		EventType:   eventType,
		Payload:     payload,
	})
	return nil
}

func (m *MockOutbox) GetUnprocessedEvents(_ context.Context, limit int) ([]*repository.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	done := make(map[int64]bool, len(m.Processed))
	for _, id := range m.Processed {
		done[id] = true
	}
	var result []*repository.OutboxEvent
	for _, e := range m.Events {
		if !done[e.ID] && len(result) < limit {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *MockOutbox) MarkEventAsProcessed(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MarkErr != nil {
		return m.MarkErr
	}
	m.Processed = append(m.Processed, id)
	return nil
}

func (m *MockOutbox) ProcessedIDs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.Processed...)
}

// MockWriter implements MessageWriter for testing
type MockWriter struct {
	Err      error
	FailKeys map[string]bool

	Messages []kafka.Message
}

func (m *MockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.Err != nil {
		return m.Err
	}
	for _, msg := range msgs {
		if m.FailKeys[string(msg.Key)] {
			return errors.New("broker rejected message")
		}
	}
	m.Messages = append(m.Messages, msgs...)
	return nil
}

func (m *MockWriter) Close() error {
	return nil
}

// MockReader implements MessageReader for testing
type MockReader struct {
	Queue     []kafka.Message
	Committed []kafka.Message
}

func (m *MockReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(m.Queue) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := m.Queue[0]
	m.Queue = m.Queue[1:]
	return msg, nil
}

func (m *MockReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	m.Committed = append(m.Committed, msgs...)
	return nil
}

func (m *MockReader) Close() error {
	return nil
}

// MockReceipts implements ReceiptStore for testing
type MockReceipts struct {
	ReserveErr error

	mu       sync.Mutex
	Receipts map[string]*Receipt
}

func NewMockReceipts() *MockReceipts {
	return &MockReceipts{Receipts: make(map[string]*Receipt)}
}

func (m *MockReceipts) Reserve(_ context.Context, r *Receipt) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReserveErr != nil {
		return false, m.ReserveErr
	}
	existing, ok := m.Receipts[r.OrderID]
	if !ok {
		cp := *r
		existing = &cp
		m.Receipts[r.OrderID] = existing
	}
	existing.Attempts++
	return existing.Status == ReceiptSent, nil
}

func (m *MockReceipts) MarkSent(_ context.Context, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.Receipts[orderID]
	if !ok {
		return ErrReceiptNotFound
	}
	r.Status = ReceiptSent
	return nil
}

func (m *MockReceipts) Get(orderID string) *Receipt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Receipts[orderID]
}

// MockMailer implements Mailer for testing
type MockMailer struct {
	Err error

	mu   sync.Mutex
	Sent []domain.OrderSummary
}

func (m *MockMailer) Send(_ context.Context, summary domain.OrderSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, summary)
	return nil
}

func (m *MockMailer) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
