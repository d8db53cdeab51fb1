package shared

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits every monetary value is kept at
const MoneyPlaces int32 = 2

var hundred = decimal.NewFromInt(100)

// Round2 rounds to two decimal places, half away from zero
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// Percent returns pct percent of amount, rounded to two places
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(pct).Div(hundred))
}

// ParseAmount parses a decimal string into a rounded monetary amount
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Round2(d), nil
}

// MustAmount parses a literal amount and panics on malformed input.
// Intended for constants and tests.
func MustAmount(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FormatMoney renders an amount with the rupee sign, e.g. ₹1020.00
func FormatMoney(d decimal.Decimal) string {
	return "₹" + d.StringFixed(MoneyPlaces)
}
