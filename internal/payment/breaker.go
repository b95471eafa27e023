package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

// BreakerGateway fails fast once the wrapped gateway keeps failing. Declines are
// successful calls and never trip it.
type BreakerGateway struct {
	next Gateway
	cb   *gobreaker.CircuitBreaker[ChargeResult]
}

func NewBreakerGateway(next Gateway, maxFailures uint32, openTimeout time.Duration, log *slog.Logger) *BreakerGateway {
	settings := gobreaker.Settings{
		Name:        "payment-gateway",
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// the caller giving up says nothing about the gateway
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrValidation)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerGateway{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[ChargeResult](settings),
	}
}

func (b *BreakerGateway) Charge(ctx context.Context, amount decimal.Decimal, method domain.PaymentMethod) (ChargeResult, error) {
	result, err := b.cb.Execute(func() (ChargeResult, error) {
		return b.next.Charge(ctx, amount, method)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ChargeResult{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return result, err
}

func (b *BreakerGateway) State() gobreaker.State {
	return b.cb.State()
}
