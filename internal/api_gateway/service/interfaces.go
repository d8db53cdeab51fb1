package service

import (
	"context"

	"github.com/payment-gateway/internal/domain/ledger"
	"github.com/payment-gateway/internal/domain/payment"
	"github.com/payment-gateway/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentService defines the interface for payment and refund operations
type PaymentService interface {
	// CreatePayment settles a payment request. A returned error means the
	// request was invalid; settlement failures come back as a FAILED result.
	CreatePayment(ctx context.Context, request *shared.PaymentRequest) (payment.PaymentResult, error)

	// RefundTransaction refunds part or all of a recorded transaction
	RefundTransaction(ctx context.Context, transactionID string, amount decimal.Decimal) payment.RefundResult

	// GetTransactionByID returns nil if the transaction is not found
	GetTransactionByID(ctx context.Context, transactionID string) (*ledger.Transaction, error)

	// GetTransactionsByUser returns one page of the user's history in insertion order and the total count
	GetTransactionsByUser(ctx context.Context, userID string, page, perPage int) ([]*ledger.Transaction, int, error)
}

// WalletService defines the interface for wallet balance operations
type WalletService interface {
	TopUp(ctx context.Context, walletID string, amount decimal.Decimal) (decimal.Decimal, error)
	GetBalance(ctx context.Context, walletID string) (decimal.Decimal, error)
}
