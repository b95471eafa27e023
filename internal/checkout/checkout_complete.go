package checkout

import (
	"context"
	"fmt"

	d "github.com/fjod/go_pos/internal/domain"
	"github.com/google/uuid"
)

// complete persists the order for a charge that already went through. A failure here
// leaves money taken with no order, so it is reported as an unrecorded charge.
func (s *CheckoutServiceImpl) complete(ctx context.Context, status d.CheckoutStatus, cart *pricedCart, request *d.CheckoutRequest, transactionID string) (*d.Order, error) {
	if !d.CanTransitionTo(status, d.CheckoutStatusCommitted) {
		return nil, IllegalTransitionError
	}

	order := &d.Order{
		ID:            uuid.New(),
		Items:         cart.items,
		Subtotal:      cart.breakdown.Subtotal,
		Discount:      cart.breakdown.Discount,
		Tax:           cart.breakdown.Tax,
		Total:         cart.breakdown.Total,
		Currency:      d.DefaultCurrency,
		PaymentMethod: request.PaymentMethod,
		TransactionID: transactionID,
		Status:        d.OrderStatusCompleted,
	}
	if cart.customer != nil {
		id := cart.customer.ID
		order.CustomerID = &id
	}

	ctx, span := s.tracer.Start(ctx, "checkout.persist")
	defer span.End()

	// the customer has paid; a dropped request must not drop the order
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.order.timeout)
	defer cancel()

	if err := s.order.orders.CreateOrder(persistCtx, order); err != nil {
		span.RecordError(err)
		s.metrics.UnrecordedCharge()
		s.log.ErrorContext(ctx, "charge succeeded but order was not recorded",
			"event", "unrecorded_charge",
			"transaction_id", transactionID,
			"order_id", order.ID,
			"amount", order.Total.StringFixed(2),
			"payment_method", order.PaymentMethod,
			"error", err)
		return nil, fmt.Errorf("%w: order not recorded for transaction %s", d.ErrFailed, transactionID)
	}

	return order, nil
}
