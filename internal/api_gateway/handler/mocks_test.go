package handler

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

// PaginatedResponse is a generic version of Response for testing paginated data
type PaginatedResponse[T any] struct {
	Data          []T        `json:"data"`
	Error         *ErrorInfo `json:"error,omitempty"`
	CorrelationID string     `json:"correlation_id,omitempty"`
	Meta          *MetaInfo  `json:"meta,omitempty"`
}

// DataResponse is a generic version of Response for testing single payloads
type DataResponse[T any] struct {
	Data  T          `json:"data"`
	Error *ErrorInfo `json:"error,omitempty"`
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreatePayment(ctx context.Context, request *shared.PaymentRequest) (payment.PaymentResult, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(payment.PaymentResult), args.Error(1)
}

func (m *MockPaymentService) RefundTransaction(ctx context.Context, transactionID string, amount decimal.Decimal) payment.RefundResult {
	args := m.Called(ctx, transactionID, amount)
	return args.Get(0).(payment.RefundResult)
}

func (m *MockPaymentService) GetTransactionByID(ctx context.Context, transactionID string) (*ledger.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockPaymentService) GetTransactionsByUser(ctx context.Context, userID string, page, perPage int) ([]*ledger.Transaction, int, error) {
	args := m.Called(ctx, userID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*ledger.Transaction), args.Int(1), args.Error(2)
}

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) TopUp(ctx context.Context, walletID string, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, walletID, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletService) GetBalance(ctx context.Context, walletID string) (decimal.Decimal, error) {
	args := m.Called(ctx, walletID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decimalEq(want string) interface{} {
	expected := decimal.RequireFromString(want)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(expected) })
}
