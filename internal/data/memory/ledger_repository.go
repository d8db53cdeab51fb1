package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/payment-gateway/internal/domain/ledger"
	"github.com/payment-gateway/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LedgerRepository implements ledger.Repository in process memory.
// A single RWMutex guards all three indexes so a reader never sees a
// transaction in one index but not another.
type LedgerRepository struct {
	mu     sync.RWMutex
	byID   map[string]*ledger.Transaction
	byKey  map[string]*ledger.Transaction
	byUser map[string][]*ledger.Transaction
	logger *slog.Logger
}

// NewLedgerRepository creates an empty in-memory ledger
func NewLedgerRepository(logger *slog.Logger) *LedgerRepository {
	return &LedgerRepository{
		byID:   make(map[string]*ledger.Transaction),
		byKey:  make(map[string]*ledger.Transaction),
		byUser: make(map[string][]*ledger.Transaction),
		logger: logger,
	}
}

// Save records a transaction under its id, idempotency key and user.
// Returns ErrDuplicateTransaction if the id or key is already recorded.
func (r *LedgerRepository) Save(_ context.Context, tx *ledger.Transaction) error {
	if tx == nil {
		return shared.ErrEmptyTransactionID
	}
	if err := tx.Validate(); err != nil {
		return err
	}

	stored := clone(tx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[stored.ID]; exists {
		return ledger.ErrDuplicateTransaction{ID: stored.ID}
	}
	if stored.IdempotencyKey != "" {
		if _, exists := r.byKey[stored.IdempotencyKey]; exists {
			return ledger.ErrDuplicateTransaction{ID: stored.ID, IdempotencyKey: stored.IdempotencyKey}
		}
		r.byKey[stored.IdempotencyKey] = stored
	}
	r.byID[stored.ID] = stored
	r.byUser[stored.UserID] = append(r.byUser[stored.UserID], stored)

	r.logger.Debug("Transaction recorded",
		"transaction_id", stored.ID,
		"user_id", stored.UserID,
		"method", stored.MethodName,
		"status", stored.Status,
	)
	return nil
}

// FindByID returns a copy of the transaction.
// Returns ErrTransactionNotFound if no transaction has the id.
func (r *LedgerRepository) FindByID(_ context.Context, id string) (*ledger.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, ok := r.byID[id]
	if !ok {
		return nil, ledger.ErrTransactionNotFound{ID: id}
	}
	return clone(tx), nil
}

// FindByIdempotencyKey returns a copy of the transaction recorded under key,
// or nil when the key is unknown or empty.
func (r *LedgerRepository) FindByIdempotencyKey(_ context.Context, key string) (*ledger.Transaction, error) {
	if key == "" {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, ok := r.byKey[key]
	if !ok {
		return nil, nil
	}
	return clone(tx), nil
}

// FindByUser returns copies of the user's transactions in insertion order
func (r *LedgerRepository) FindByUser(_ context.Context, userID string) ([]*ledger.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := r.byUser[userID]
	out := make([]*ledger.Transaction, 0, len(history))
	for _, tx := range history {
		out = append(out, clone(tx))
	}
	return out, nil
}

// ApplyRefund increments TotalRefunded if amount fits in the remaining
// captured amount. Check and update happen under one write lock.
func (r *LedgerRepository) ApplyRefund(_ context.Context, id string, amount decimal.Decimal) (*ledger.Transaction, error) {
	amount = shared.Round2(amount)
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, ok := r.byID[id]
	if !ok {
		return nil, ledger.ErrTransactionNotFound{ID: id}
	}
	if amount.GreaterThan(tx.Remaining()) {
		return nil, ledger.ErrRefundExceedsRemaining
	}

	// indexes share the pointer, so one update is visible everywhere
	tx.TotalRefunded = shared.Round2(tx.TotalRefunded.Add(amount))
	tx.RefundCount++

	return clone(tx), nil
}

// Count returns the number of recorded transactions
func (r *LedgerRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func clone(tx *ledger.Transaction) *ledger.Transaction {
	c := *tx
	return &c
}
