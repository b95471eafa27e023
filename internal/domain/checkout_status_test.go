package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from CheckoutStatus
		to   CheckoutStatus
		ok   bool
	}{
		{"received to validated", CheckoutStatusReceived, CheckoutStatusValidated, true},
		{"validated to priced", CheckoutStatusValidated, CheckoutStatusPriced, true},
		{"priced to pending", CheckoutStatusPriced, CheckoutStatusPaymentPending, true},
		{"pending to committed", CheckoutStatusPaymentPending, CheckoutStatusCommitted, true},
		{"pending to declined", CheckoutStatusPaymentPending, CheckoutStatusDeclined, true},
		{"pending to failed", CheckoutStatusPaymentPending, CheckoutStatusFailed, true},
		{"skip validation", CheckoutStatusReceived, CheckoutStatusPriced, false},
		{"commit without payment", CheckoutStatusPriced, CheckoutStatusCommitted, false},
		{"leave terminal", CheckoutStatusDeclined, CheckoutStatusPaymentPending, false},
		{"committed is final", CheckoutStatusCommitted, CheckoutStatusFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, CanTransitionTo(tt.from, tt.to))
		})
	}
}

func TestCheckoutStatus_IsTerminal(t *testing.T) {
	assert.True(t, CheckoutStatusCommitted.IsTerminal())
	assert.True(t, CheckoutStatusDeclined.IsTerminal())
	assert.True(t, CheckoutStatusFailed.IsTerminal())
	assert.False(t, CheckoutStatusPaymentPending.IsTerminal())
	assert.False(t, CheckoutStatusReceived.IsTerminal())
}
