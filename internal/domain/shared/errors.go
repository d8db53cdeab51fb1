package shared

import "errors"

var (
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidCurrency    = errors.New("unsupported currency")
	ErrEmptyUserID        = errors.New("user id cannot be empty")
	ErrEmptyTransactionID = errors.New("transaction id cannot be empty")
)
