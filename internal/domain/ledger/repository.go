package ledger

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrRefundExceedsRemaining = errors.New("refund exceeds remaining captured amount")

// Repository stores settled transactions indexed by id, idempotency key and user.
// Implementations must be safe for concurrent use and must make a saved
// transaction visible in every index at once.
type Repository interface {
	Save(ctx context.Context, tx *Transaction) error
	FindByID(ctx context.Context, id string) (*Transaction, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*Transaction, error)
	FindByUser(ctx context.Context, userID string) ([]*Transaction, error)

	// ApplyRefund atomically checks amount against the remaining captured
	// amount and increments TotalRefunded. The transaction is untouched on error.
	ApplyRefund(ctx context.Context, id string, amount decimal.Decimal) (*Transaction, error)
}

// ErrTransactionNotFound indicates a missing ledger transaction
type ErrTransactionNotFound struct {
	ID string
}

func (e ErrTransactionNotFound) Error() string {
	return "transaction not found: " + e.ID
}

// Is matches any ErrTransactionNotFound when the target carries no id
func (e ErrTransactionNotFound) Is(target error) bool {
	t, ok := target.(ErrTransactionNotFound)
	if !ok {
		return false
	}
	if t.ID == "" {
		return true
	}
	return e.ID == t.ID
}

// ErrDuplicateTransaction indicates a transaction id or idempotency key is already recorded
type ErrDuplicateTransaction struct {
	ID             string
	IdempotencyKey string
}

func (e ErrDuplicateTransaction) Error() string {
	if e.IdempotencyKey != "" {
		return "duplicate idempotency key: " + e.IdempotencyKey
	}
	return "duplicate transaction: " + e.ID
}

// Is matches any ErrDuplicateTransaction
func (e ErrDuplicateTransaction) Is(target error) bool {
	_, ok := target.(ErrDuplicateTransaction)
	return ok
}
