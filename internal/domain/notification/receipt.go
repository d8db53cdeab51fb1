package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/payment-gateway/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Receipt is the display-safe record of a charge or refund handed to notifiers.
// Refund receipts carry the refunded amount as a negative ChargedAmount.
type Receipt struct {
	TransactionID string          `json:"transaction_id"`
	UserID        string          `json:"user_id"`
	Method        string          `json:"method"`
	MaskedInfo    string          `json:"masked_info"`
	Amount        decimal.Decimal `json:"amount"`
	ChargedAmount decimal.Decimal `json:"charged_amount"`
	Fee           decimal.Decimal `json:"fee"`
	Discount      decimal.Decimal `json:"discount"`
	Status        shared.Status   `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// IsRefund reports whether the receipt records money returned to the payer
func (r Receipt) IsRefund() bool {
	return r.ChargedAmount.IsNegative()
}

func (r Receipt) String() string {
	return fmt.Sprintf("[%s %s %s] %s(%s)", r.TransactionID, r.Status, shared.FormatMoney(r.ChargedAmount), r.Method, r.MaskedInfo)
}

// Notifier delivers receipts. Implementations must not block the caller for
// long; delivery failures are the notifier's concern.
type Notifier interface {
	Notify(ctx context.Context, userID string, receipt Receipt) error
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(ctx context.Context, userID string, receipt Receipt) error

func (f NotifierFunc) Notify(ctx context.Context, userID string, receipt Receipt) error {
	return f(ctx, userID, receipt)
}

// Discard drops every receipt
var Discard Notifier = NotifierFunc(func(context.Context, string, Receipt) error { return nil })
