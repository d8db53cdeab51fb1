package payment

import (
	"github.com/payment-gateway/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentResult is the outcome of one execute call
type PaymentResult struct {
	TransactionID string          `json:"transaction_id"`
	Status        shared.Status   `json:"status"`
	ChargedAmount decimal.Decimal `json:"charged_amount"`
	Message       string          `json:"message"`
}

// RefundResult is the outcome of one refund call
type RefundResult struct {
	RefundID       string          `json:"refund_id"`
	Status         shared.Status   `json:"status"`
	RefundedAmount decimal.Decimal `json:"refunded_amount"`
	Message        string          `json:"message"`
}

const (
	MsgCardAuthorized     = "Authorized"
	MsgCardTimeout        = "Bank authorization timeout"
	MsgUPICollected       = "Collected via UPI"
	MsgUPIProviderError   = "UPI provider error"
	MsgWalletCharged      = "Wallet charged"
	MsgWalletInsufficient = "Insufficient wallet balance"
	MsgAttemptConsumed    = "Payment attempt already processed"
	MsgLedgerWriteFailed  = "Ledger write failed"

	MsgRefundNonPositive = "Refund must be > 0"
	MsgRefundNotFound    = "Txn not found"
	MsgRefundExceeds     = "Refund exceeds remaining"
	MsgRefunded          = "Refunded"
)

// FailedRefund builds a FAILED refund result with no refund id
func FailedRefund(message string) RefundResult {
	return RefundResult{
		Status:         shared.StatusFailed,
		RefundedAmount: decimal.Zero,
		Message:        message,
	}
}
