package notification

import (
	"context"
	"log/slog"

	"github.com/fjod/go_pos/internal/domain"
)

// Mailer sends a receipt to summary.Email.
type Mailer interface {
	Send(ctx context.Context, summary domain.OrderSummary) error
}

// LogMailer writes the receipt to the log instead of an SMTP server.
type LogMailer struct {
	log *slog.Logger
}

func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, summary domain.OrderSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.log.InfoContext(ctx, "sending order confirmation email",
		"to", summary.Email,
		"order_id", summary.OrderID,
		"customer", summary.CustomerName,
		"total", "₹"+summary.Total.StringFixed(2),
		"payment_method", summary.PaymentMethod,
		"items", len(summary.Items),
		"transaction_id", summary.TransactionID)
	return nil
}
