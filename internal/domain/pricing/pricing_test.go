package pricing

import (
	"testing"

	"github.com/payment-gateway/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type method string

func (m method) MethodName() string { return string(m) }

func TestPromos(t *testing.T) {
	tests := []struct {
		name   string
		promo  Promo
		amount string
		want   string
	}{
		{"NoPromo", NoPromo{}, "1000", "1000.00"},
		{"Flat", FlatPromo{Flat: shared.MustAmount("150")}, "1000", "850.00"},
		{"FlatFloorsAtZero", FlatPromo{Flat: shared.MustAmount("150")}, "100", "0.00"},
		{"Percentage", PercentagePromo{Percent: shared.MustAmount("10")}, "1000", "900.00"},
		{"PercentageRounds", PercentagePromo{Percent: shared.MustAmount("15")}, "33.33", "28.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.promo.Apply(shared.MustAmount(tt.amount))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestNewPromo(t *testing.T) {
	p, err := NewPromo("", decimal.Zero)
	require.NoError(t, err)
	assert.IsType(t, NoPromo{}, p)

	p, err = NewPromo("Percentage", shared.MustAmount("10"))
	require.NoError(t, err)
	assert.Equal(t, PercentagePromo{Percent: shared.MustAmount("10")}, p)

	p, err = NewPromo("flat", shared.MustAmount("50"))
	require.NoError(t, err)
	assert.Equal(t, FlatPromo{Flat: shared.MustAmount("50")}, p)

	_, err = NewPromo("percentage", shared.MustAmount("120"))
	assert.Error(t, err)
	_, err = NewPromo("bogus", decimal.Zero)
	assert.Error(t, err)
	_, err = NewPromo("flat", shared.MustAmount("-1"))
	assert.Error(t, err)
}

func TestRegistryFeeStrategy(t *testing.T) {
	fees := NewRegistryFeeStrategy().
		Register("Card", shared.MustAmount("2")).
		Register("UPI", shared.MustAmount("0.5"))

	assert.Equal(t, "18.00", fees.Apply(shared.MustAmount("900"), method("Card")).StringFixed(2))
	assert.Equal(t, "5.00", fees.Apply(shared.MustAmount("1000"), method("upi")).StringFixed(2))

	t.Run("UnregisteredMethodPaysNoFee", func(t *testing.T) {
		fee := fees.Apply(shared.MustAmount("1000"), method("Crypto"))
		assert.True(t, fee.IsZero())
	})
}

func TestFeeAfterDiscount(t *testing.T) {
	promo := PercentagePromo{Percent: shared.MustAmount("10")}
	fees := NewRegistryFeeStrategy().Register("Card", shared.MustAmount("2"))

	discounted := promo.Apply(shared.MustAmount("1000"))
	fee := fees.Apply(discounted, method("Card"))
	charged := shared.Round2(discounted.Add(fee))

	assert.Equal(t, "900.00", discounted.StringFixed(2))
	assert.Equal(t, "18.00", fee.StringFixed(2))
	assert.Equal(t, "918.00", charged.StringFixed(2))
}
