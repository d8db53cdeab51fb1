package ledger

import (
	"errors"
	"testing"

	"github.com/payment-gateway/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Remaining(t *testing.T) {
	tx := &Transaction{
		CapturedAmount: shared.MustAmount("1020"),
		TotalRefunded:  shared.MustAmount("500.5"),
	}
	assert.Equal(t, "519.50", tx.Remaining().StringFixed(2))
}

func TestTransaction_Validate(t *testing.T) {
	valid := func() *Transaction {
		return &Transaction{
			ID:             "TXN-1",
			UserID:         "u1",
			OriginalAmount: shared.MustAmount("100"),
			CapturedAmount: shared.MustAmount("102"),
		}
	}

	tests := []struct {
		name    string
		mutate  func(tx *Transaction)
		wantErr error
	}{
		{"Valid", func(tx *Transaction) {}, nil},
		{"MissingID", func(tx *Transaction) { tx.ID = "" }, shared.ErrEmptyTransactionID},
		{"MissingUser", func(tx *Transaction) { tx.UserID = "" }, shared.ErrEmptyUserID},
		{"ZeroOriginal", func(tx *Transaction) { tx.OriginalAmount = shared.MustAmount("0") }, shared.ErrInvalidAmount},
		{"OverRefunded", func(tx *Transaction) { tx.TotalRefunded = shared.MustAmount("103") }, ErrRefundExceedsRemaining},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid()
			tt.mutate(tx)
			err := tx.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestErrTransactionNotFound_Is(t *testing.T) {
	err := error(ErrTransactionNotFound{ID: "TXN-1"})
	assert.True(t, errors.Is(err, ErrTransactionNotFound{}))
	assert.True(t, errors.Is(err, ErrTransactionNotFound{ID: "TXN-1"}))
	assert.False(t, errors.Is(err, ErrTransactionNotFound{ID: "TXN-2"}))
}
