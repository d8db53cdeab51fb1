package handler

import (
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest represents a request to charge a user
type CreatePaymentRequest struct {
	Method         string            `json:"method" binding:"required"`
	Amount         decimal.Decimal   `json:"amount"`
	Currency       string            `json:"currency"`
	Details        map[string]string `json:"details"`
	UserID         string            `json:"user_id" binding:"required"`
	TransactionID  string            `json:"transaction_id,omitempty"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
}

// PaymentResponse represents the outcome of a payment attempt
type PaymentResponse struct {
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status"`
	ChargedAmount decimal.Decimal `json:"charged_amount"`
	Message       string          `json:"message"`
}

// RefundRequest represents a request to refund part of a transaction
type RefundRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// RefundResponse represents the outcome of a refund attempt
type RefundResponse struct {
	RefundID       string          `json:"refund_id,omitempty"`
	Status         string          `json:"status"`
	RefundedAmount decimal.Decimal `json:"refunded_amount"`
	Message        string          `json:"message"`
}

// TransactionResponse represents a ledger transaction in API responses
type TransactionResponse struct {
	TransactionID  string          `json:"transaction_id"`
	UserID         string          `json:"user_id"`
	Method         string          `json:"method"`
	Currency       string          `json:"currency"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	CapturedAmount decimal.Decimal `json:"captured_amount"`
	TotalRefunded  decimal.Decimal `json:"total_refunded"`
	Remaining      decimal.Decimal `json:"remaining"`
	RefundCount    int             `json:"refund_count"`
	Status         string          `json:"status"`
	MaskedInfo     string          `json:"masked_info"`
	CreatedAt      string          `json:"created_at"`
}

// TopUpRequest represents a request to add funds to a wallet
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// WalletResponse represents a wallet balance in API responses
type WalletResponse struct {
	WalletID string          `json:"wallet_id"`
	Balance  decimal.Decimal `json:"balance"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}
