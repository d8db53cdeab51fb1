package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/payment-gateway/internal/domain/ledger"
	"github.com/payment-gateway/internal/domain/payment"
	"github.com/payment-gateway/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Save(ctx context.Context, tx *ledger.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindByID(ctx context.Context, id string) (*ledger.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindByIdempotencyKey(ctx context.Context, key string) (*ledger.Transaction, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindByUser(ctx context.Context, userID string) ([]*ledger.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) ApplyRefund(ctx context.Context, id string, amount decimal.Decimal) (*ledger.Transaction, error) {
	args := m.Called(ctx, id, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) ProcessPayment(ctx context.Context, request *shared.PaymentRequest) (payment.PaymentResult, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(payment.PaymentResult), args.Error(1)
}

type MockPaymentProcessor struct {
	mock.Mock
}

func (m *MockPaymentProcessor) Execute(ctx context.Context, v payment.Variant, key string) payment.PaymentResult {
	args := m.Called(ctx, v, key)
	return args.Get(0).(payment.PaymentResult)
}

func (m *MockPaymentProcessor) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) payment.RefundResult {
	args := m.Called(ctx, transactionID, amount)
	return args.Get(0).(payment.RefundResult)
}

func (m *MockPaymentProcessor) RefundPayment(ctx context.Context, v payment.Variant, amount decimal.Decimal) payment.RefundResult {
	args := m.Called(ctx, v, amount)
	return args.Get(0).(payment.RefundResult)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
