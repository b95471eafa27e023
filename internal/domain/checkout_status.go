package domain

type CheckoutStatus string

const (
	CheckoutStatusReceived       CheckoutStatus = "RECEIVED"
	CheckoutStatusValidated      CheckoutStatus = "VALIDATED"
	CheckoutStatusPriced         CheckoutStatus = "PRICED"
	CheckoutStatusPaymentPending CheckoutStatus = "PAYMENT_PENDING"
	CheckoutStatusCommitted      CheckoutStatus = "COMMITTED"
	CheckoutStatusDeclined       CheckoutStatus = "DECLINED"
	CheckoutStatusFailed         CheckoutStatus = "FAILED"
)

var checkoutTransitions = map[CheckoutStatus][]CheckoutStatus{
	CheckoutStatusReceived:       {CheckoutStatusValidated},
	CheckoutStatusValidated:      {CheckoutStatusPriced},
	CheckoutStatusPriced:         {CheckoutStatusPaymentPending},
	CheckoutStatusPaymentPending: {CheckoutStatusCommitted, CheckoutStatusDeclined, CheckoutStatusFailed},
}

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusCommitted || s == CheckoutStatusDeclined || s == CheckoutStatusFailed
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}

func CanTransitionTo(from, to CheckoutStatus) bool {
	for _, next := range checkoutTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
