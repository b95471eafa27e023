package checkout

import (
	"context"
	"errors"

	d "github.com/fjod/go_pos/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Checkout runs one attempt. Validation and lookup errors are returned before any side
// effect, a decline persists nothing, and an Order exists only after a successful charge.
func (s *CheckoutServiceImpl) Checkout(ctx context.Context, request *d.CheckoutRequest) (*d.CheckoutResponse, error) {
	ctx, span := s.tracer.Start(ctx, "checkout")
	defer span.End()

	response, err := s.run(ctx, request)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "checkout did not commit")
		s.metrics.ObserveCheckout(outcomeOf(err))
		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", response.Order.ID.String()))
	s.metrics.ObserveCheckout(outcomeCommitted)
	return response, nil
}

func (s *CheckoutServiceImpl) run(ctx context.Context, request *d.CheckoutRequest) (*d.CheckoutResponse, error) {
	status := d.CheckoutStatusReceived

	if err := validateRequest(request); err != nil {
		return nil, err
	}
	status, err := advance(status, d.CheckoutStatusValidated)
	if err != nil {
		return nil, err
	}

	cart, err := s.price(ctx, request)
	if err != nil {
		return nil, err
	}
	if status, err = advance(status, d.CheckoutStatusPriced); err != nil {
		return nil, err
	}

	transactionID, err := s.processPayment(ctx, status, cart.breakdown.Total.Round(2), request.PaymentMethod)
	if err != nil {
		s.logPaymentFailure(ctx, err, cart, request.PaymentMethod)
		return nil, err
	}
	status = d.CheckoutStatusPaymentPending

	order, err := s.complete(ctx, status, cart, request, transactionID)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "checkout committed",
		"order_id", order.ID,
		"transaction_id", transactionID,
		"tier", cart.tier.String(),
		"total", order.Total.StringFixed(2),
		"repriced_lines", len(cart.repriced))

	s.notify(ctx, order, cart.customer, request.CustomerEmail)

	return &d.CheckoutResponse{
		Order:         order,
		TransactionID: transactionID,
		Status:        d.CheckoutStatusCommitted,
		Repriced:      cart.repriced,
	}, nil
}

// logPaymentFailure keeps declines at INFO. Any other failure leaves settlement unknown,
// so an operator has to reconcile it with the gateway.
func (s *CheckoutServiceImpl) logPaymentFailure(ctx context.Context, err error, cart *pricedCart, method d.PaymentMethod) {
	var decline *d.DeclineError
	if errors.As(err, &decline) {
		s.log.InfoContext(ctx, "checkout declined",
			"status", d.CheckoutStatusDeclined,
			"reason", decline.Reason,
			"total", cart.breakdown.Total.StringFixed(2))
		return
	}

	s.metrics.AmbiguousCharge()
	s.log.ErrorContext(ctx, "payment outcome unknown",
		"event", "ambiguous_charge",
		"status", terminalFor(err),
		"amount", cart.breakdown.Total.StringFixed(2),
		"payment_method", method,
		"error", err)
}

func advance(from, to d.CheckoutStatus) (d.CheckoutStatus, error) {
	if !d.CanTransitionTo(from, to) {
		return from, IllegalTransitionError
	}
	return to, nil
}

// terminalFor names the state a failed attempt ended in.
func terminalFor(err error) d.CheckoutStatus {
	if errors.Is(err, d.ErrDeclined) {
		return d.CheckoutStatusDeclined
	}
	return d.CheckoutStatusFailed
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, d.ErrDeclined):
		return outcomeDeclined
	case errors.Is(err, d.ErrValidation), errors.Is(err, d.ErrNotFound):
		return outcomeRejected
	default:
		return outcomeFailed
	}
}
