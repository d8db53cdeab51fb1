// Package payment holds the payment variants the gateway can settle and the
// contract the processor uses to drive them.
package payment

import (
	"context"
	"sync/atomic"

	"github.com/payment-gateway/internal/domain/shared"
	"github.com/payment-gateway/internal/domain/wallet"
	"github.com/shopspring/decimal"
)

// Variant is one method-specific payment attempt. A variant is validated at
// construction, settled at most once by Process, and may afterwards be used
// to refund the transaction it produced.
type Variant interface {
	TransactionID() string
	Amount() decimal.Decimal
	Currency() shared.Currency
	UserID() string
	MethodName() string
	MaskedInfo() string

	// Process settles the attempt. It either persists exactly one SUCCESS
	// transaction through the settlement or returns FAILED having persisted nothing.
	Process(ctx context.Context, idempotencyKey string, s Settlement) PaymentResult
	Refund(ctx context.Context, amount decimal.Decimal, s Settlement) RefundResult

	// RefundHook returns the side effect a later refund of the settled
	// transaction must run, or nil when the ledger entry is all there is.
	RefundHook() RefundHook
}

// RefundHook runs after the ledger accepted a refund of refunded. It carries
// only what the side effect needs, never the payment instrument.
type RefundHook func(ctx context.Context, refunded decimal.Decimal, s Settlement) error

// RefundWithHook refunds transactionID through the settlement, then runs hook
// when the ledger accepted it. A hook error is appended to the message.
func RefundWithHook(ctx context.Context, transactionID string, amount decimal.Decimal, s Settlement, hook RefundHook) RefundResult {
	res := s.PerformRefund(ctx, transactionID, amount)
	if res.Status != shared.StatusSuccess || hook == nil {
		return res
	}
	if err := hook(ctx, res.RefundedAmount, s); err != nil {
		res.Message = res.Message + "; " + err.Error()
	}
	return res
}

// Pricing is the outcome of the promo then fee pipeline for one amount
type Pricing struct {
	Amount     decimal.Decimal
	Discounted decimal.Decimal
	Discount   decimal.Decimal
	Fee        decimal.Decimal
	Charged    decimal.Decimal
}

// Settlement is the processing context handed to a variant. It exposes the
// collaborators a variant may consult and the only ways it may touch shared state.
type Settlement interface {
	Price(v Variant) Pricing
	ProviderHiccup() bool
	Wallets() wallet.BalanceStore
	PersistSuccess(ctx context.Context, v Variant, price Pricing, idempotencyKey, message string) error
	NotifyCharge(ctx context.Context, v Variant, price Pricing)
	PerformRefund(ctx context.Context, transactionID string, amount decimal.Decimal) RefundResult
}

// Common holds the fields every variant carries
type Common struct {
	TransactionID string
	Amount        decimal.Decimal
	Currency      shared.Currency
	UserID        string
}

type base struct {
	transactionID string
	amount        decimal.Decimal
	currency      shared.Currency
	userID        string
	consumed      atomic.Bool
}

func newBase(c Common) (*base, error) {
	amount := shared.Round2(c.Amount)
	switch {
	case c.TransactionID == "":
		return nil, invalid("transactionId", shared.ErrEmptyTransactionID)
	case !amount.IsPositive():
		return nil, invalid("amount", shared.ErrInvalidAmount)
	case !c.Currency.IsValid():
		return nil, invalid("currency", shared.ErrInvalidCurrency)
	case c.UserID == "":
		return nil, invalid("userId", shared.ErrEmptyUserID)
	}
	return &base{
		transactionID: c.TransactionID,
		amount:        amount,
		currency:      c.Currency,
		userID:        c.UserID,
	}, nil
}

func (b *base) TransactionID() string     { return b.transactionID }
func (b *base) Amount() decimal.Decimal   { return b.amount }
func (b *base) Currency() shared.Currency { return b.currency }
func (b *base) UserID() string            { return b.userID }

// claim marks the attempt as consumed; it returns false if Process already ran
func (b *base) claim() bool {
	return b.consumed.CompareAndSwap(false, true)
}

func (b *base) failed(message string) PaymentResult {
	return PaymentResult{
		TransactionID: b.transactionID,
		Status:        shared.StatusFailed,
		ChargedAmount: decimal.Zero,
		Message:       message,
	}
}

// settleWithProvider runs the provider-backed flow shared by card and UPI
func settleWithProvider(ctx context.Context, v Variant, b *base, key string, s Settlement, hiccupMsg, okMsg string) PaymentResult {
	if !b.claim() {
		return b.failed(MsgAttemptConsumed)
	}
	if s.ProviderHiccup() {
		return b.failed(hiccupMsg)
	}

	price := s.Price(v)
	if err := s.PersistSuccess(ctx, v, price, key, okMsg); err != nil {
		return b.failed(MsgLedgerWriteFailed + ": " + err.Error())
	}
	s.NotifyCharge(ctx, v, price)

	return PaymentResult{
		TransactionID: b.transactionID,
		Status:        shared.StatusSuccess,
		ChargedAmount: price.Charged,
		Message:       okMsg,
	}
}
