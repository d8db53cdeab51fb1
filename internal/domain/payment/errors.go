package payment

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMethod     = errors.New("unknown payment method")
	ErrInvalidCardNumber = errors.New("invalid card number")
	ErrCardExpired       = errors.New("card expired")
	ErrInvalidExpiry     = errors.New("expiry must be MM/YYYY")
	ErrInvalidCVV        = errors.New("invalid CVV")
	ErrInvalidUPIHandle  = errors.New("invalid UPI id")
	ErrEmptyWalletID     = errors.New("invalid walletId")
)

// ValidationError reports the field that failed construction-time validation
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// IsValidationError reports whether err came from construction-time validation
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
