package service

import (
	"context"

	"github.com/payment-gateway/internal/domain/payment"
	"github.com/payment-gateway/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentProcessor settles constructed payment variants and refunds recorded transactions
type PaymentProcessor interface {
	Execute(ctx context.Context, v payment.Variant, idempotencyKey string) payment.PaymentResult
	Refund(ctx context.Context, transactionID string, amount decimal.Decimal) payment.RefundResult
	RefundPayment(ctx context.Context, v payment.Variant, amount decimal.Decimal) payment.RefundResult
}

// ProcessingService turns inbound payment requests into settled results.
// A returned error means the request never reached settlement.
type ProcessingService interface {
	ProcessPayment(ctx context.Context, request *shared.PaymentRequest) (payment.PaymentResult, error)
}

// MetricsRecorder receives processing outcomes
type MetricsRecorder interface {
	PaymentProcessed(method string, status shared.Status)
	PaymentReplayed(method string)
	RefundProcessed(status shared.Status)
}

type noopMetrics struct{}

func (noopMetrics) PaymentProcessed(string, shared.Status) {}
func (noopMetrics) PaymentReplayed(string)                 {}
func (noopMetrics) RefundProcessed(shared.Status)          {}
