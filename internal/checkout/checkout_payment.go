package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	d "github.com/fjod/go_pos/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// processPayment charges the rounded total. A decline comes back as *d.DeclineError;
// anything without a definitive answer, including a timeout, is d.ErrFailed.
func (s *CheckoutServiceImpl) processPayment(ctx context.Context, status d.CheckoutStatus, amount decimal.Decimal, method d.PaymentMethod) (string, error) {
	if !d.CanTransitionTo(status, d.CheckoutStatusPaymentPending) {
		return "", IllegalTransitionError
	}

	ctx, span := s.tracer.Start(ctx, "checkout.payment")
	defer span.End()
	span.SetAttributes(
		attribute.String("payment.method", method.String()),
		attribute.String("payment.amount", amount.StringFixed(2)),
	)

	paymentCtx, cancel := context.WithTimeout(ctx, s.payment.timeout)
	defer cancel()

	start := time.Now()
	result, err := s.payment.gateway.Charge(paymentCtx, amount, method)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(paymentCtx.Err(), context.DeadlineExceeded) {
			s.metrics.ObserveGateway(method.String(), "timeout", elapsed)
			return "", fmt.Errorf("%w: payment gateway did not answer within %s", d.ErrFailed, waited(paymentCtx, start))
		}
		s.metrics.ObserveGateway(method.String(), "error", elapsed)
		return "", fmt.Errorf("%w: payment gateway: %v", d.ErrFailed, err)
	}

	if !result.Success {
		s.metrics.ObserveGateway(method.String(), "declined", elapsed)
		return "", &d.DeclineError{Reason: result.Reason}
	}
	if result.TransactionID == "" {
		s.metrics.ObserveGateway(method.String(), "error", elapsed)
		return "", fmt.Errorf("%w: payment gateway approved without a transaction id", d.ErrFailed)
	}

	s.metrics.ObserveGateway(method.String(), "approved", elapsed)
	span.SetAttributes(attribute.String("payment.transaction_id", result.TransactionID))
	return result.TransactionID, nil
}

// waited reports how long the charge was allowed to run, which is shorter than the
// configured timeout when the caller's own deadline fired first.
func waited(ctx context.Context, start time.Time) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		return deadline.Sub(start).Round(time.Millisecond)
	}
	return time.Since(start).Round(time.Millisecond)
}
