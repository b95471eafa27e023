package payment

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/shopspring/decimal"
)

// DeclineUnknown is the reason given when the gateway does not say why.
const DeclineUnknown = "Payment declined by gateway"

var declineReasons = []string{
	"insufficient funds",
	"card expired",
	"card declined",
	"limit exceeded",
}

const txnAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// OutcomeStrategy decides whether a non-cash charge goes through.
type OutcomeStrategy interface {
	Outcome() (approved bool, reason string)
}

// RandomOutcome declines DeclinePercent of charges.
type RandomOutcome struct {
	DeclinePercent int
}

func (r RandomOutcome) Outcome() (bool, string) {
	return calcOutcome(rand.Intn(100), r.DeclinePercent)
}

// calcOutcome approves rolls below 100-declinePercent. Declined rolls map onto the known
// reasons in order, and past the end of the list onto DeclineUnknown.
func calcOutcome(roll, declinePercent int) (bool, string) {
	threshold := 100 - declinePercent
	if roll < threshold {
		return true, ""
	}
	idx := roll - threshold
	if idx < len(declineReasons) {
		return false, declineReasons[idx]
	}
	return false, DeclineUnknown
}

// FixedOutcome always returns the same answer.
type FixedOutcome struct {
	Approved bool
	Reason   string
}

func (f FixedOutcome) Outcome() (bool, string) {
	return f.Approved, f.Reason
}

// SimulatedGateway stands in for a card processor.
type SimulatedGateway struct {
	strategy OutcomeStrategy
	latency  time.Duration
	now      func() time.Time
}

func NewSimulatedGateway(strategy OutcomeStrategy, latency time.Duration) *SimulatedGateway {
	return &SimulatedGateway{
		strategy: strategy,
		latency:  latency,
		now:      time.Now,
	}
}

func (g *SimulatedGateway) Charge(ctx context.Context, amount decimal.Decimal, method domain.PaymentMethod) (ChargeResult, error) {
	if amount.IsNegative() {
		return ChargeResult{}, fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}
	if !method.IsValid() {
		return ChargeResult{}, fmt.Errorf("%w: unsupported payment method %q", domain.ErrValidation, method)
	}

	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ChargeResult{}, ctx.Err()
		}
	}

	// cash settles at the counter
	if method != domain.PaymentMethodCash {
		if approved, reason := g.strategy.Outcome(); !approved {
			if reason == "" {
				reason = DeclineUnknown
			}
			return ChargeResult{Success: false, Reason: reason}, nil
		}
	}

	return ChargeResult{Success: true, TransactionID: newTransactionID(g.now())}, nil
}

// newTransactionID formats TXN-<unix ms>-<9 uppercase alphanumerics>.
func newTransactionID(now time.Time) string {
	var b strings.Builder
	b.Grow(9)
	for i := 0; i < 9; i++ {
		b.WriteByte(txnAlphabet[rand.Intn(len(txnAlphabet))])
	}
	return fmt.Sprintf("TXN-%d-%s", now.UnixMilli(), b.String())
}
