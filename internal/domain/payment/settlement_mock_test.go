package payment

import (
	"context"
	"io"
	"log/slog"

	"github.com/payment-gateway/internal/data/memory"
	"github.com/payment-gateway/internal/domain/wallet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockSettlement struct {
	mock.Mock
	wallets wallet.BalanceStore
}

func newMockSettlement() *MockSettlement {
	return &MockSettlement{
		wallets: memory.NewWalletStore(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func (m *MockSettlement) Price(v Variant) Pricing {
	args := m.Called(v)
	return args.Get(0).(Pricing)
}

func (m *MockSettlement) ProviderHiccup() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockSettlement) Wallets() wallet.BalanceStore {
	return m.wallets
}

func (m *MockSettlement) PersistSuccess(ctx context.Context, v Variant, price Pricing, key, message string) error {
	args := m.Called(ctx, v, price, key, message)
	return args.Error(0)
}

func (m *MockSettlement) NotifyCharge(ctx context.Context, v Variant, price Pricing) {
	m.Called(ctx, v, price)
}

func (m *MockSettlement) PerformRefund(ctx context.Context, transactionID string, amount decimal.Decimal) RefundResult {
	args := m.Called(ctx, transactionID, amount)
	return args.Get(0).(RefundResult)
}

func flatPricing(amount string) Pricing {
	d := decimal.RequireFromString(amount)
	return Pricing{Amount: d, Discounted: d, Discount: decimal.Zero, Fee: decimal.Zero, Charged: d}
}
