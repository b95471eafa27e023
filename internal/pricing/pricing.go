// Package pricing computes order totals. It performs no I/O and keeps full decimal
// precision; callers round only when presenting amounts.
package pricing

import (
	"errors"
	"fmt"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/shopspring/decimal"
)

var ErrInvalidInput = errors.New("invalid pricing input")

var (
	memberRate   = decimal.RequireFromString("0.10")
	existingRate = decimal.RequireFromString("0.05")
	hundred      = decimal.NewFromInt(100)
)

// Line is one priced cart line with its product's own tax rate in percent.
type Line struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
}

type Breakdown struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Rounded returns the breakdown at two decimal places for display.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		Subtotal: b.Subtotal.Round(2),
		Discount: b.Discount.Round(2),
		Tax:      b.Tax.Round(2),
		Total:    b.Total.Round(2),
	}
}

// DiscountRate returns the flat discount for a tier. Tiers never stack.
func DiscountRate(tier domain.CustomerTier) decimal.Decimal {
	switch tier {
	case domain.TierMember:
		return memberRate
	case domain.TierExisting:
		return existingRate
	default:
		return decimal.Zero
	}
}

// Calculate prices the lines for the given tier.
//
// The discount applies to the aggregate subtotal while tax is summed per line on the
// undiscounted line amount, so total = subtotal - discount + tax.
func Calculate(lines []Line, tier domain.CustomerTier) (Breakdown, error) {
	if len(lines) == 0 {
		return Breakdown{}, fmt.Errorf("%w: no items", ErrInvalidInput)
	}

	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, l := range lines {
		if err := validateLine(l); err != nil {
			return Breakdown{}, err
		}
		amount := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		subtotal = subtotal.Add(amount)
		tax = tax.Add(amount.Mul(l.TaxRate).Div(hundred))
	}

	discount := subtotal.Mul(DiscountRate(tier))
	total := subtotal.Sub(discount).Add(tax)

	return Breakdown{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    total,
	}, nil
}

func validateLine(l Line) error {
	if l.Quantity <= 0 {
		return fmt.Errorf("%w: product %s quantity must be positive, got %d", ErrInvalidInput, l.ProductID, l.Quantity)
	}
	if l.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: product %s has negative price %s", ErrInvalidInput, l.ProductID, l.UnitPrice)
	}
	if l.TaxRate.IsNegative() || l.TaxRate.GreaterThan(hundred) {
		return fmt.Errorf("%w: product %s tax rate %s is outside [0,100]", ErrInvalidInput, l.ProductID, l.TaxRate)
	}
	return nil
}
