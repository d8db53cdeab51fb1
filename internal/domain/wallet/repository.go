package wallet

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrEmptyWalletID     = errors.New("wallet id cannot be empty")
	ErrInvalidAmount     = errors.New("wallet amount must be positive")
)

// BalanceStore owns per-wallet balances. Debit is a single atomic
// check-and-deduct step per wallet id; Credit and TopUp are atomic adds.
type BalanceStore interface {
	Balance(ctx context.Context, walletID string) (decimal.Decimal, error)
	TopUp(ctx context.Context, walletID string, amount decimal.Decimal) (decimal.Decimal, error)
	Debit(ctx context.Context, walletID string, amount decimal.Decimal) (decimal.Decimal, error)
	Credit(ctx context.Context, walletID string, amount decimal.Decimal) (decimal.Decimal, error)
}
