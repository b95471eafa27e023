package pricing

import (
	"math/rand"
	"testing"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func TestCalculate_Scenarios(t *testing.T) {
	cart := []Line{{ProductID: "p1", Quantity: 2, UnitPrice: dec("100"), TaxRate: dec("12")}}

	tests := []struct {
		name     string
		tier     domain.CustomerTier
		discount string
		total    string
	}{
		{name: "no customer", tier: domain.TierNone, discount: "0", total: "224"},
		{name: "member", tier: domain.TierMember, discount: "20", total: "204"},
		{name: "existing non-member", tier: domain.TierExisting, discount: "10", total: "214"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Calculate(cart, tt.tier)
			require.NoError(t, err)
			assertDecimal(t, "200", b.Subtotal)
			assertDecimal(t, tt.discount, b.Discount)
			assertDecimal(t, "24", b.Tax)
			assertDecimal(t, tt.total, b.Total)
		})
	}
}

func TestCalculate_PerLineTaxRates(t *testing.T) {
	lines := []Line{
		{ProductID: "scarf", Quantity: 1, UnitPrice: dec("100"), TaxRate: dec("5")},
		{ProductID: "dress", Quantity: 1, UnitPrice: dec("100"), TaxRate: dec("12")},
	}

	b, err := Calculate(lines, domain.TierNone)
	require.NoError(t, err)
	assertDecimal(t, "200", b.Subtotal)
	assertDecimal(t, "17", b.Tax)
	assertDecimal(t, "217", b.Total)
}

func TestCalculate_TaxIgnoresDiscount(t *testing.T) {
	lines := []Line{{ProductID: "blazer", Quantity: 1, UnitPrice: dec("3999"), TaxRate: dec("12")}}

	none, err := Calculate(lines, domain.TierNone)
	require.NoError(t, err)
	member, err := Calculate(lines, domain.TierMember)
	require.NoError(t, err)

	assert.True(t, none.Tax.Equal(member.Tax))
	assertDecimal(t, "479.88", member.Tax)
	assertDecimal(t, "399.9", member.Discount)
	assertDecimal(t, "4078.98", member.Total)
}

func TestCalculate_NoIntermediateRounding(t *testing.T) {
	lines := []Line{
		{ProductID: "a", Quantity: 3, UnitPrice: dec("33.333"), TaxRate: dec("5")},
		{ProductID: "b", Quantity: 7, UnitPrice: dec("0.015"), TaxRate: dec("12")},
	}

	b, err := Calculate(lines, domain.TierExisting)
	require.NoError(t, err)
	assertDecimal(t, "100.104", b.Subtotal)
	assertDecimal(t, "5.0052", b.Discount)
	assertDecimal(t, "5.01255", b.Tax)
	assertDecimal(t, "100.11135", b.Total)

	rounded := b.Rounded()
	assert.Equal(t, "100.10", rounded.Subtotal.StringFixed(2))
	assert.Equal(t, "100.11", rounded.Total.StringFixed(2))
}

func TestCalculate_TotalIdentity(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	tiers := []domain.CustomerTier{domain.TierNone, domain.TierExisting, domain.TierMember}

	for i := 0; i < 500; i++ {
		n := rnd.Intn(8) + 1
		lines := make([]Line, n)
		for j := range lines {
			lines[j] = Line{
				ProductID: "p",
				Quantity:  rnd.Intn(20) + 1,
				UnitPrice: decimal.New(rnd.Int63n(1_000_000), -2),
				TaxRate:   decimal.New(rnd.Int63n(10_001), -2),
			}
		}
		tier := tiers[rnd.Intn(len(tiers))]

		b, err := Calculate(lines, tier)
		require.NoError(t, err)
		assert.True(t, b.Total.Equal(b.Subtotal.Sub(b.Discount).Add(b.Tax)), "identity broken for %+v", lines)
	}
}

func TestCalculate_DiscountMonotonicByTier(t *testing.T) {
	lines := []Line{{ProductID: "shirt", Quantity: 3, UnitPrice: dec("1299"), TaxRate: dec("5")}}

	none, err := Calculate(lines, domain.TierNone)
	require.NoError(t, err)
	existing, err := Calculate(lines, domain.TierExisting)
	require.NoError(t, err)
	member, err := Calculate(lines, domain.TierMember)
	require.NoError(t, err)

	assert.True(t, none.Discount.LessThanOrEqual(existing.Discount))
	assert.True(t, existing.Discount.LessThanOrEqual(member.Discount))
	assert.True(t, none.Subtotal.Equal(member.Subtotal))
}

func TestCalculate_Deterministic(t *testing.T) {
	lines := []Line{
		{ProductID: "a", Quantity: 2, UnitPrice: dec("499"), TaxRate: dec("5")},
		{ProductID: "b", Quantity: 1, UnitPrice: dec("2999"), TaxRate: dec("12")},
	}

	first, err := Calculate(lines, domain.TierMember)
	require.NoError(t, err)
	second, err := Calculate(lines, domain.TierMember)
	require.NoError(t, err)

	assert.Equal(t, first.Subtotal.String(), second.Subtotal.String())
	assert.Equal(t, first.Discount.String(), second.Discount.String())
	assert.Equal(t, first.Tax.String(), second.Tax.String())
	assert.Equal(t, first.Total.String(), second.Total.String())
}

func TestCalculate_ZeroPriceAndZeroTax(t *testing.T) {
	lines := []Line{{ProductID: "gift", Quantity: 1, UnitPrice: dec("0"), TaxRate: dec("0")}}

	b, err := Calculate(lines, domain.TierMember)
	require.NoError(t, err)
	assert.True(t, b.Total.IsZero())
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
	}{
		{name: "empty", lines: nil},
		{name: "zero quantity", lines: []Line{{ProductID: "a", Quantity: 0, UnitPrice: dec("1"), TaxRate: dec("5")}}},
		{name: "negative quantity", lines: []Line{{ProductID: "a", Quantity: -1, UnitPrice: dec("1"), TaxRate: dec("5")}}},
		{name: "negative price", lines: []Line{{ProductID: "a", Quantity: 1, UnitPrice: dec("-0.01"), TaxRate: dec("5")}}},
		{name: "negative tax", lines: []Line{{ProductID: "a", Quantity: 1, UnitPrice: dec("1"), TaxRate: dec("-1")}}},
		{name: "tax above 100", lines: []Line{{ProductID: "a", Quantity: 1, UnitPrice: dec("1"), TaxRate: dec("100.5")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.lines, domain.TierNone)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCalculate_TaxBoundaries(t *testing.T) {
	lines := []Line{
		{ProductID: "a", Quantity: 1, UnitPrice: dec("10"), TaxRate: dec("0")},
		{ProductID: "b", Quantity: 1, UnitPrice: dec("10"), TaxRate: dec("100")},
	}

	b, err := Calculate(lines, domain.TierNone)
	require.NoError(t, err)
	assertDecimal(t, "10", b.Tax)
}

func TestDiscountRate(t *testing.T) {
	assertDecimal(t, "0", DiscountRate(domain.TierNone))
	assertDecimal(t, "0.05", DiscountRate(domain.TierExisting))
	assertDecimal(t, "0.10", DiscountRate(domain.TierMember))
}
