// Package money converts between the platform's minor-unit (cent) amounts and
// currency units. Every amount crossing the API boundary is in cents; dividing
// by 100 happens here and nowhere else.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// FromCents returns the currency-unit value of a cent amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToCents converts a currency-unit value back to cents, rounding to the
// nearest cent.
func ToCents(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// Percentage returns part/whole*100 as a float64, or 0 when whole is not
// positive. The guard is what keeps percentage math free of NaN and Inf.
func Percentage(part, whole decimal.Decimal) float64 {
	if whole.Sign() <= 0 {
		return 0
	}
	f, _ := part.Div(whole).Mul(hundred).Float64()
	return f
}

// Ratio returns num/den*100 for integer counts, with the same zero guard.
func Ratio(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}
