package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	MethodCard        = "Card"
	minCardDigits     = 12
	cardMaskPrefix    = "**** **** **** "
	expiryLayoutParts = 2
)

// Expiry is a card expiry year-month
type Expiry struct {
	Year  int
	Month time.Month
}

// ParseExpiry parses an MM/YYYY expiry
func ParseExpiry(s string) (Expiry, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != expiryLayoutParts || len(parts[0]) != 2 || len(parts[1]) != 4 {
		return Expiry{}, ErrInvalidExpiry
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return Expiry{}, ErrInvalidExpiry
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return Expiry{}, ErrInvalidExpiry
	}
	return Expiry{Year: year, Month: time.Month(month)}, nil
}

// ExpiryOf returns the year-month containing t
func ExpiryOf(t time.Time) Expiry {
	return Expiry{Year: t.Year(), Month: t.Month()}
}

// Before reports whether e is an earlier year-month than other
func (e Expiry) Before(other Expiry) bool {
	if e.Year != other.Year {
		return e.Year < other.Year
	}
	return e.Month < other.Month
}

func (e Expiry) String() string {
	return fmt.Sprintf("%02d/%04d", int(e.Month), e.Year)
}

// CardDetails are the card-specific fields of a card payment
type CardDetails struct {
	Holder string
	Number string
	Expiry Expiry
	CVV    string
}

// CardPayment settles through a card network
type CardPayment struct {
	*base
	holder string
	number string
	expiry Expiry
	cvv    string
}

// NewCardPayment validates the card and returns a payment ready to process
func NewCardPayment(c Common, d CardDetails) (*CardPayment, error) {
	b, err := newBase(c)
	if err != nil {
		return nil, err
	}

	number, err := normalizeCardNumber(d.Number)
	if err != nil {
		return nil, invalid("cardNumber", err)
	}
	if d.Expiry.Month < time.January || d.Expiry.Month > time.December {
		return nil, invalid("expiry", ErrInvalidExpiry)
	}
	if d.Expiry.Before(ExpiryOf(time.Now())) {
		return nil, invalid("expiry", ErrCardExpired)
	}
	if !validCVV(d.CVV) {
		return nil, invalid("cvv", ErrInvalidCVV)
	}

	return &CardPayment{
		base:   b,
		holder: d.Holder,
		number: number,
		expiry: d.Expiry,
		cvv:    d.CVV,
	}, nil
}

func normalizeCardNumber(raw string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	if len(digits) < minCardDigits {
		return "", ErrInvalidCardNumber
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", ErrInvalidCardNumber
		}
	}
	if !luhnValid(digits) {
		return "", ErrInvalidCardNumber
	}
	return digits, nil
}

// luhnValid expects a string of ASCII digits
func luhnValid(digits string) bool {
	sum := 0
	alt := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if alt {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		alt = !alt
	}
	return sum%10 == 0
}

func validCVV(cvv string) bool {
	if len(cvv) != 3 && len(cvv) != 4 {
		return false
	}
	for _, r := range cvv {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (p *CardPayment) MethodName() string { return MethodCard }

// MaskedInfo shows only the last four digits
func (p *CardPayment) MaskedInfo() string {
	return cardMaskPrefix + p.number[len(p.number)-4:]
}

func (p *CardPayment) Process(ctx context.Context, key string, s Settlement) PaymentResult {
	return settleWithProvider(ctx, p, p.base, key, s, MsgCardTimeout, MsgCardAuthorized)
}

func (p *CardPayment) Refund(ctx context.Context, amount decimal.Decimal, s Settlement) RefundResult {
	return s.PerformRefund(ctx, p.transactionID, amount)
}

func (p *CardPayment) RefundHook() RefundHook { return nil }
