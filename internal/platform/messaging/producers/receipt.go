package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/payment-gateway/internal/config"
	"github.com/payment-gateway/internal/domain/notification"
	"github.com/segmentio/kafka-go"
)

// ReceiptProducer publishes receipts to the receipt topic, keyed by user id
// so one user's receipts stay ordered within a partition.
type ReceiptProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

var (
	_ MessagePublisher      = (*ReceiptProducer)(nil)
	_ notification.Notifier = (*ReceiptProducer)(nil)
)

// receiptMessage is the wire format of a published receipt
type receiptMessage struct {
	notification.Receipt
	Kind    string `json:"kind"` // charge or refund
	Summary string `json:"summary"`
}

// NewReceiptProducer ensures the receipt topic exists and returns an async producer
func NewReceiptProducer(_ context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*ReceiptProducer, error) {
	if cfg.ReceiptTopic == "" {
		return nil, fmt.Errorf("kafka receipt topic is not configured")
	}
	if err := ensureTopic(cfg, cfg.ReceiptTopic, logger); err != nil {
		return nil, fmt.Errorf("receipt producer: %w", err)
	}

	return &ReceiptProducer{
		logger: logger,
		writer: newWriter(cfg, cfg.ReceiptTopic, true, kafka.RequireOne, logger),
		topic:  cfg.ReceiptTopic,
	}, nil
}

// Notify publishes the receipt
func (p *ReceiptProducer) Notify(ctx context.Context, userID string, receipt notification.Receipt) error {
	kind := "charge"
	if receipt.IsRefund() {
		kind = "refund"
	}
	return p.Publish(ctx, userID, receiptMessage{
		Receipt: receipt,
		Kind:    kind,
		Summary: receipt.String(),
	})
}

func (p *ReceiptProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish receipt",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish receipt to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published receipt", "topic", p.topic, "key", key)
	return nil
}

func (p *ReceiptProducer) Close() error {
	p.logger.Info("Closing receipt producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close receipt writer for topic %s: %w", p.topic, err)
	}
	return nil
}
