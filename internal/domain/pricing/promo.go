package pricing

import (
	"fmt"
	"strings"

	"github.com/payment-gateway/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Promo maps a pre-discount amount to the discounted amount
type Promo interface {
	Apply(amount decimal.Decimal) decimal.Decimal
}

// NoPromo leaves the amount unchanged
type NoPromo struct{}

func (NoPromo) Apply(amount decimal.Decimal) decimal.Decimal {
	return shared.Round2(amount)
}

// FlatPromo subtracts a fixed amount, floored at zero
type FlatPromo struct {
	Flat decimal.Decimal
}

func (p FlatPromo) Apply(amount decimal.Decimal) decimal.Decimal {
	return shared.Round2(decimal.Max(decimal.Zero, amount.Sub(p.Flat)))
}

// PercentagePromo takes a percentage off the amount
type PercentagePromo struct {
	Percent decimal.Decimal
}

func (p PercentagePromo) Apply(amount decimal.Decimal) decimal.Decimal {
	return shared.Round2(amount.Sub(shared.Percent(amount, p.Percent)))
}

const (
	PromoTypeNone       = "none"
	PromoTypeFlat       = "flat"
	PromoTypePercentage = "percentage"
)

// NewPromo builds a promo from its configured type and value
func NewPromo(promoType string, value decimal.Decimal) (Promo, error) {
	if value.IsNegative() {
		return nil, fmt.Errorf("promo value must not be negative: %s", value)
	}
	switch strings.ToLower(promoType) {
	case "", PromoTypeNone:
		return NoPromo{}, nil
	case PromoTypeFlat:
		return FlatPromo{Flat: value}, nil
	case PromoTypePercentage:
		if value.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("percentage promo cannot exceed 100: %s", value)
		}
		return PercentagePromo{Percent: value}, nil
	default:
		return nil, fmt.Errorf("unknown promo type %q", promoType)
	}
}
