package service

import (
	"context"
	"log/slog"

	"github.com/payment-gateway/internal/domain/payment"
	"github.com/payment-gateway/internal/domain/shared"
)

// VariantFactory builds a payment variant from an inbound request
type VariantFactory interface {
	Create(req *shared.PaymentRequest) (payment.Variant, error)
}

// RequestProcessingService builds a variant for each request and settles it
// through the processor under the request's idempotency key.
type RequestProcessingService struct {
	factory   VariantFactory
	processor PaymentProcessor
	logger    *slog.Logger
}

func NewRequestProcessingService(factory VariantFactory, processor PaymentProcessor, logger *slog.Logger) *RequestProcessingService {
	return &RequestProcessingService{
		factory:   factory,
		processor: processor,
		logger:    logger,
	}
}

// ProcessPayment returns construction errors unchanged so callers can tell
// validation failures from settlement outcomes.
func (s *RequestProcessingService) ProcessPayment(ctx context.Context, request *shared.PaymentRequest) (payment.PaymentResult, error) {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	variant, err := s.factory.Create(request)
	if err != nil {
		logger.Warn("Payment request rejected",
			"method", request.Method,
			"user_id", request.UserID,
			"error", err,
		)
		return payment.PaymentResult{}, err
	}

	logger.Info("Processing payment",
		"transaction_id", variant.TransactionID(),
		"method", variant.MethodName(),
		"amount", variant.Amount().String(),
		"masked_info", variant.MaskedInfo(),
	)
	return s.processor.Execute(ctx, variant, request.IdempotencyKey), nil
}
