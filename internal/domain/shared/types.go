package shared

import "strings"

// Status defines payment and refund outcome states
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// IsTerminal reports whether a transaction in this status can no longer change state
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Currency defines the supported settlement currencies
type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
)

// IsValid reports whether the currency is one the gateway settles in
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyINR, CurrencyUSD:
		return true
	}
	return false
}

// ParseCurrency converts a case-insensitive currency code into a Currency
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.IsValid() {
		return "", ErrInvalidCurrency
	}
	return c, nil
}
