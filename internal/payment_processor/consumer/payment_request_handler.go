package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/payment-gateway/internal/domain/payment"
	"github.com/payment-gateway/internal/domain/shared"
	"github.com/payment-gateway/internal/payment_processor/service"
	"github.com/payment-gateway/internal/platform/messaging/producers"
)

// PaymentRequestHandler settles payment requests consumed from Kafka
type PaymentRequestHandler struct {
	processingService service.ProcessingService
	producer          producers.DeadLetterPublisher
	logger            *slog.Logger
}

func NewPaymentRequestHandler(
	logger *slog.Logger,
	processingService service.ProcessingService,
	producer producers.DeadLetterPublisher,
) *PaymentRequestHandler {
	return &PaymentRequestHandler{
		processingService: processingService,
		producer:          producer,
		logger:            logger,
	}
}

// HandleMessage returns nil whenever the message is finished with, including
// FAILED settlements and messages parked on the DLQ. An error makes the
// consumer retry the message and, failing that, skip it uncommitted.
func (h *PaymentRequestHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var request shared.PaymentRequest
	if err := json.Unmarshal(value, &request); err != nil {
		h.logger.Error("Failed to unmarshal payment request from Kafka message",
			"error", err,
			"message_key", string(key),
		)
		return h.deadLetter(ctx, key, value, fmt.Sprintf("undecodable payment request: %v", err), err)
	}

	logger := h.logger
	if request.CorrelationID != "" {
		logger = h.logger.With("correlation_id", request.CorrelationID)
	}
	if request.IdempotencyKey == "" && len(key) > 0 {
		request.IdempotencyKey = string(key)
	}

	logger.Info("Received payment request",
		"method", request.Method,
		"user_id", request.UserID,
		"amount", request.Amount.String(),
		"idempotency_key", request.IdempotencyKey,
	)

	result, err := h.processingService.ProcessPayment(ctx, &request)
	if err != nil {
		if payment.IsValidationError(err) || errors.Is(err, payment.ErrUnknownMethod) {
			logger.Warn("Payment request rejected", "error", err)
			return h.deadLetter(ctx, key, value, err.Error(), err)
		}
		logger.Error("Failed to process payment request", "error", err)
		return fmt.Errorf("processing payment request %s failed: %w", string(key), err)
	}

	logger.Info("Payment request settled",
		"transaction_id", result.TransactionID,
		"status", result.Status,
		"charged", result.ChargedAmount.String(),
		"message", result.Message,
	)
	return nil
}

// deadLetter parks a message that can never succeed. When no DLQ is
// available the original error is returned so the message is not lost.
func (h *PaymentRequestHandler) deadLetter(ctx context.Context, key, value []byte, reason string, cause error) error {
	if h.producer == nil {
		return fmt.Errorf("unprocessable payment request: %w", cause)
	}
	if err := h.producer.PublishToDLQ(ctx, string(key), value, reason); err != nil {
		h.logger.Error("Failed to publish message to DLQ",
			"dlq_error", err,
			"original_error", cause,
			"message_key", string(key),
		)
		return fmt.Errorf("unprocessable payment request: %w", cause)
	}
	h.logger.Info("Published unprocessable message to DLQ", "message_key", string(key), "reason", reason)
	return nil
}
