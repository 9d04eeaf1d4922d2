package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCents(t *testing.T) {
	assert.Equal(t, "450", FromCents(45000).String())
	assert.Equal(t, "0.01", FromCents(1).String())
	assert.Equal(t, "0", FromCents(0).String())
	assert.Equal(t, "-12.34", FromCents(-1234).String())
}

func TestRoundTrip(t *testing.T) {
	// Repeated divide/multiply-by-100 cycles must recover the original cents.
	for _, cents := range []int64{0, 1, 99, 100, 12345, 99999999, 45000} {
		d := FromCents(cents)
		for i := 0; i < 10; i++ {
			d = FromCents(ToCents(d))
		}
		require.Equal(t, cents, ToCents(d), "cents drifted for %d", cents)
	}
}

func TestPercentage(t *testing.T) {
	got := Percentage(decimal.NewFromInt(450), decimal.NewFromInt(1000))
	assert.Equal(t, 45.0, got)

	// Zero or negative denominators yield exactly 0, never NaN/Inf.
	assert.Equal(t, 0.0, Percentage(decimal.NewFromInt(450), decimal.Zero))
	assert.Equal(t, 0.0, Percentage(decimal.Zero, decimal.Zero))
	assert.Equal(t, 0.0, Percentage(decimal.NewFromInt(1), decimal.NewFromInt(-5)))

	// Spend past the cap is allowed and exceeds 100.
	assert.Equal(t, 150.0, Percentage(decimal.NewFromInt(1500), decimal.NewFromInt(1000)))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 80.0, Ratio(80, 100))
	assert.Equal(t, 0.0, Ratio(5, 0))
	assert.Equal(t, 120.0, Ratio(12, 10))
}
