package checkout

import (
	"context"

	d "github.com/fjod/go_pos/internal/domain"
)

// notify sends the receipt in the background. The request email wins over the stored one.
func (s *CheckoutServiceImpl) notify(ctx context.Context, order *d.Order, customer *d.Customer, email string) {
	if s.notifier == nil || s.notifier.notifier == nil {
		return
	}

	to := email
	if to == "" && customer != nil {
		to = customer.Email
	}
	if to == "" {
		s.log.DebugContext(ctx, "no customer email, skipping notification", "order_id", order.ID)
		return
	}

	summary := d.NewOrderSummary(order, customer, to)
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifier.timeout)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()

		if err := s.notifier.notifier.Notify(notifyCtx, to, summary); err != nil {
			s.metrics.ObserveNotification("failed")
			s.log.WarnContext(notifyCtx, "order notification failed", "order_id", order.ID, "error", err)
			return
		}
		s.metrics.ObserveNotification("sent")
	}()
}
