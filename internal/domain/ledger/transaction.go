package ledger

import (
	"time"

	"github.com/payment-gateway/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Transaction is a settled payment recorded in the ledger.
// Once saved it is owned by the ledger; callers only ever see copies.
type Transaction struct {
	ID             string          `json:"transaction_id"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
	UserID         string          `json:"user_id"`
	MethodName     string          `json:"method"`
	Currency       shared.Currency `json:"currency"`
	OriginalAmount decimal.Decimal `json:"original_amount"` // pre-discount
	CapturedAmount decimal.Decimal `json:"captured_amount"` // actually charged
	TotalRefunded  decimal.Decimal `json:"total_refunded"`
	RefundCount    int             `json:"refund_count"`
	Status         shared.Status   `json:"status"`
	Message        string          `json:"message,omitempty"`
	MaskedInfo     string          `json:"masked_info"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Remaining is the amount still refundable
func (t *Transaction) Remaining() decimal.Decimal {
	return shared.Round2(t.CapturedAmount.Sub(t.TotalRefunded))
}

// Validate checks the invariants a transaction must satisfy before it is saved
func (t *Transaction) Validate() error {
	switch {
	case t.ID == "":
		return shared.ErrEmptyTransactionID
	case t.UserID == "":
		return shared.ErrEmptyUserID
	case !t.OriginalAmount.IsPositive():
		return shared.ErrInvalidAmount
	case t.CapturedAmount.IsNegative(), t.TotalRefunded.IsNegative():
		return shared.ErrInvalidAmount
	case t.TotalRefunded.GreaterThan(t.CapturedAmount):
		return ErrRefundExceedsRemaining
	}
	return nil
}
