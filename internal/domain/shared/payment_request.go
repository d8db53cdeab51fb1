package shared

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest is the inbound construction request for a payment attempt.
// It arrives over HTTP or as a Kafka message and is turned into a payment
// variant by the factory.
type PaymentRequest struct {
	TransactionID  string            `json:"transaction_id,omitempty"`
	Method         string            `json:"method"`
	Amount         decimal.Decimal   `json:"amount"`
	Currency       Currency          `json:"currency"`
	Details        map[string]string `json:"details,omitempty"`
	UserID         string            `json:"user_id"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
	CorrelationID  string            `json:"correlation_id,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
}

// Detail returns the first non-empty value among the given detail keys
func (r *PaymentRequest) Detail(keys ...string) string {
	for _, k := range keys {
		if v := r.Details[k]; v != "" {
			return v
		}
	}
	return ""
}
