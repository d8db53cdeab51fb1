package service

import (
	"context"
	"testing"

	"github.com/payment-gateway/internal/data/memory"
	"github.com/payment-gateway/internal/domain/wallet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletService(t *testing.T) {
	ctx := context.Background()
	svc := NewWalletService(testLogger(), memory.NewWalletStore(testLogger()))

	balance, err := svc.GetBalance(ctx, "W1")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	balance, err = svc.TopUp(ctx, "W1", decimal.RequireFromString("250.555"))
	require.NoError(t, err)
	assert.Equal(t, "250.56", balance.String())

	_, err = svc.TopUp(ctx, "W1", decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, wallet.ErrInvalidAmount)

	_, err = svc.TopUp(ctx, "", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, wallet.ErrEmptyWalletID)

	balance, err = svc.GetBalance(ctx, "W1")
	require.NoError(t, err)
	assert.Equal(t, "250.56", balance.String())
}
