// Package payment charges orders through a payment gateway. The gateway is untrusted:
// it may decline, time out, or be unreachable, and callers must tell those apart.
package payment

import (
	"context"
	"errors"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrUnavailable marks a charge whose outcome is unknown: transport failure, bad response or open breaker.
var ErrUnavailable = errors.New("payment gateway unavailable")

// ChargeResult is a definitive gateway answer. A decline is a result, not an error.
type ChargeResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

type Gateway interface {
	Charge(ctx context.Context, amount decimal.Decimal, method domain.PaymentMethod) (ChargeResult, error)
}

type chargeRequest struct {
	Amount decimal.Decimal      `json:"amount"`
	Method domain.PaymentMethod `json:"method"`
}
