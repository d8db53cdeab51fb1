package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/payment-gateway/internal/data/memory"
	"github.com/payment-gateway/internal/domain/notification"
	"github.com/payment-gateway/internal/domain/payment"
	"github.com/payment-gateway/internal/domain/pricing"
	"github.com/payment-gateway/internal/domain/provider"
	"github.com/payment-gateway/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID string, receipt notification.Receipt) error {
	args := m.Called(ctx, userID, receipt)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) PaymentProcessed(method string, status shared.Status) {
	m.Called(method, status)
}

func (m *MockMetrics) PaymentReplayed(method string) {
	m.Called(method)
}

func (m *MockMetrics) RefundProcessed(status shared.Status) {
	m.Called(status)
}

type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) ProcessPayment(ctx context.Context, request *shared.PaymentRequest) (payment.PaymentResult, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(payment.PaymentResult), args.Error(1)
}

var fixedNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	ledger    *memory.LedgerRepository
	wallets   *memory.WalletStore
	notifier  *MockNotifier
	processor *Processor
}

func newFixture(promo pricing.Promo, failures provider.FailureSimulator) *fixture {
	logger := testLogger()
	f := &fixture{
		ledger:   memory.NewLedgerRepository(logger),
		wallets:  memory.NewWalletStore(logger),
		notifier: &MockNotifier{},
	}
	f.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.processor = NewProcessor(Dependencies{
		Ledger:  f.ledger,
		Wallets: f.wallets,
		Fees: pricing.NewRegistryFeeStrategy().
			Register(payment.MethodCard, decimal.NewFromInt(2)).
			Register(payment.MethodUPI, decimal.RequireFromString("0.5")).
			Register(payment.MethodWallet, decimal.NewFromInt(1)),
		Promo:    promo,
		Failures: failures,
		Notifier: f.notifier,
		Clock:    func() time.Time { return fixedNow },
	}, logger)
	return f
}

func commonFields(txID, amount string) payment.Common {
	return payment.Common{
		TransactionID: txID,
		Amount:        decimal.RequireFromString(amount),
		Currency:      shared.CurrencyINR,
		UserID:        "user-1",
	}
}

func mustCard(txID, amount string) payment.Variant {
	v, err := payment.NewCardPayment(commonFields(txID, amount), payment.CardDetails{
		Holder: "Test Holder",
		Number: "4111111111111111",
		Expiry: payment.ExpiryOf(time.Now().AddDate(1, 0, 0)),
		CVV:    "123",
	})
	if err != nil {
		panic(err)
	}
	return v
}

func mustWallet(txID, amount, walletID string) payment.Variant {
	v, err := payment.NewWalletPayment(commonFields(txID, amount), walletID)
	if err != nil {
		panic(err)
	}
	return v
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
