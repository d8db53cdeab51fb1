package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/payment-gateway/internal/domain/ledger"
	"github.com/payment-gateway/internal/domain/payment"
	"github.com/payment-gateway/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_CreatePayment(t *testing.T) {
	processing := &MockProcessingService{}
	svc := NewPaymentService(testLogger(), processing, &MockPaymentProcessor{}, &MockLedgerRepository{})

	req := &shared.PaymentRequest{Method: "card", Amount: decimal.NewFromInt(1000), UserID: "U1"}
	want := payment.PaymentResult{TransactionID: "TXN-1", Status: shared.StatusSuccess, ChargedAmount: decimal.NewFromInt(1020)}
	processing.On("ProcessPayment", mock.Anything, req).Return(want, nil).Once()

	got, err := svc.CreatePayment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	invalid := &shared.PaymentRequest{Method: "cheque"}
	processing.On("ProcessPayment", mock.Anything, invalid).Return(payment.PaymentResult{}, payment.ErrUnknownMethod).Once()
	_, err = svc.CreatePayment(context.Background(), invalid)
	assert.ErrorIs(t, err, payment.ErrUnknownMethod)

	processing.AssertExpectations(t)
}

func TestPaymentService_RefundTransaction(t *testing.T) {
	refunds := &MockPaymentProcessor{}
	svc := NewPaymentService(testLogger(), &MockProcessingService{}, refunds, &MockLedgerRepository{})

	want := payment.RefundResult{RefundID: "R-TXN-1-1", Status: shared.StatusSuccess, RefundedAmount: decimal.NewFromInt(50)}
	refunds.On("Refund", mock.Anything, "TXN-1", decimal.NewFromInt(50)).Return(want).Once()

	assert.Equal(t, want, svc.RefundTransaction(context.Background(), "TXN-1", decimal.NewFromInt(50)))
	refunds.AssertExpectations(t)
}

func TestPaymentService_GetTransactionByID(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*MockLedgerRepository)
		wantTx     bool
		wantErr    bool
	}{
		{
			name: "found",
			setupMocks: func(repo *MockLedgerRepository) {
				repo.On("FindByID", mock.Anything, "TXN-1").Return(&ledger.Transaction{ID: "TXN-1"}, nil)
			},
			wantTx: true,
		},
		{
			name: "not found returns nil without error",
			setupMocks: func(repo *MockLedgerRepository) {
				repo.On("FindByID", mock.Anything, "TXN-1").Return(nil, ledger.ErrTransactionNotFound{ID: "TXN-1"})
			},
		},
		{
			name: "repository error",
			setupMocks: func(repo *MockLedgerRepository) {
				repo.On("FindByID", mock.Anything, "TXN-1").Return(nil, errors.New("boom"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockLedgerRepository{}
			tt.setupMocks(repo)
			svc := NewPaymentService(testLogger(), &MockProcessingService{}, &MockPaymentProcessor{}, repo)

			tx, err := svc.GetTransactionByID(context.Background(), "TXN-1")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantTx, tx != nil)
			repo.AssertExpectations(t)
		})
	}
}

func TestPaymentService_GetTransactionsByUser(t *testing.T) {
	history := make([]*ledger.Transaction, 5)
	for i := range history {
		history[i] = &ledger.Transaction{ID: fmt.Sprintf("TXN-%d", i+1), UserID: "U1"}
	}

	tests := []struct {
		name    string
		page    int
		perPage int
		wantIDs []string
	}{
		{name: "first page", page: 1, perPage: 2, wantIDs: []string{"TXN-1", "TXN-2"}},
		{name: "last partial page", page: 3, perPage: 2, wantIDs: []string{"TXN-5"}},
		{name: "past the end", page: 4, perPage: 2, wantIDs: []string{}},
		{name: "everything", page: 1, perPage: 10, wantIDs: []string{"TXN-1", "TXN-2", "TXN-3", "TXN-4", "TXN-5"}},
		{name: "huge page number", page: 1_000_000_000_000_000_000, perPage: 10, wantIDs: []string{}},
		{name: "huge page and size", page: math.MaxInt, perPage: math.MaxInt, wantIDs: []string{}},
		{name: "huge size", page: 1, perPage: math.MaxInt, wantIDs: []string{"TXN-1", "TXN-2", "TXN-3", "TXN-4", "TXN-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockLedgerRepository{}
			repo.On("FindByUser", mock.Anything, "U1").Return(history, nil)
			svc := NewPaymentService(testLogger(), &MockProcessingService{}, &MockPaymentProcessor{}, repo)

			var page []*ledger.Transaction
			var total int
			var err error
			require.NotPanics(t, func() {
				page, total, err = svc.GetTransactionsByUser(context.Background(), "U1", tt.page, tt.perPage)
			})
			require.NoError(t, err)
			assert.Equal(t, 5, total)

			ids := []string{}
			for _, tx := range page {
				ids = append(ids, tx.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	t.Run("repository error", func(t *testing.T) {
		repo := &MockLedgerRepository{}
		repo.On("FindByUser", mock.Anything, "U1").Return(nil, errors.New("boom"))
		svc := NewPaymentService(testLogger(), &MockProcessingService{}, &MockPaymentProcessor{}, repo)

		_, _, err := svc.GetTransactionsByUser(context.Background(), "U1", 1, 10)
		assert.Error(t, err)
	})
}
