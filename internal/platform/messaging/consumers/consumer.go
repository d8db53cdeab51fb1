package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/payment-gateway/internal/config"
	"github.com/segmentio/kafka-go"
)

type MessageHandler func(ctx context.Context, key []byte, value []byte) error

// Consumer defines the message queue consumer interface
type Consumer interface {
	Subscribe(ctx context.Context, topic string, groupID string, handler MessageHandler) error
	Close() error
}

// MessageReader wraps kafka.Reader methods for testing
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConsumer implements Consumer using a Kafka consumer group
type KafkaConsumer struct {
	reader      MessageReader
	logger      *slog.Logger
	retryDelay  time.Duration
	maxAttempts int
	done        chan struct{}
}

// NewKafkaConsumer reads the payment request topic as part of the configured group
func NewKafkaConsumer(_ context.Context, logger *slog.Logger, cfg *config.KafkaConfig) *KafkaConsumer {
	startOffset := kafka.FirstOffset
	if cfg.StartOffset != 0 {
		startOffset = cfg.StartOffset
	}
	return newKafkaConsumer(logger, kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{cfg.Brokers},
		Topic:       cfg.RequestTopic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    cfg.MinBytes,
		MaxBytes:    cfg.MaxBytes,
		MaxWait:     cfg.MaxWait,
		StartOffset: startOffset,
	}))
}

func newKafkaConsumer(logger *slog.Logger, reader MessageReader) *KafkaConsumer {
	return &KafkaConsumer{
		reader:      reader,
		logger:      logger,
		retryDelay:  time.Second,
		maxAttempts: 3,
		done:        make(chan struct{}),
	}
}

// Subscribe starts consuming in the background. A message is committed only
// after handler returns nil. A failing message is retried up to maxAttempts
// times, then skipped uncommitted: the reader has already moved past it, so
// it comes back only after a restart or a group rebalance.
func (c *KafkaConsumer) Subscribe(ctx context.Context, topic string, groupID string, handler MessageHandler) error {
	c.logger.Info("Subscribed to Kafka topic",
		"topic", topic,
		"group_id", groupID,
	)

	go func() {
		defer close(c.done)
		for {
			if ctx.Err() != nil {
				c.logger.Info("Context canceled, stopping consumer", "topic", topic, "group_id", groupID)
				return
			}

			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					c.logger.Info("Context canceled, stopping consumer", "topic", topic, "group_id", groupID)
					return
				}
				c.logger.Error("Failed to fetch message from Kafka",
					"topic", topic,
					"group_id", groupID,
					"error", err,
				)
				select {
				case <-ctx.Done():
				case <-time.After(c.retryDelay):
				}
				continue
			}

			c.logger.Debug("Received message from Kafka",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"key", string(msg.Key),
			)

			if err := c.handle(ctx, msg, handler); err != nil {
				c.logger.Error("Failed to process message, skipping without commit",
					"topic", msg.Topic,
					"partition", msg.Partition,
					"offset", msg.Offset,
					"key", string(msg.Key),
					"attempts", c.maxAttempts,
					"error", err,
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("Failed to commit message after successful processing",
					"topic", msg.Topic,
					"offset", msg.Offset,
					"key", string(msg.Key),
					"error", err,
				)
			}
		}
	}()

	return nil
}

// handle runs handler until it succeeds, the attempts run out or ctx ends
func (c *KafkaConsumer) handle(ctx context.Context, msg kafka.Message, handler MessageHandler) error {
	attempts := c.maxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = handler(ctx, msg.Key, msg.Value); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		c.logger.Warn("Retrying message",
			"topic", msg.Topic,
			"offset", msg.Offset,
			"attempt", attempt,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return err
		case <-time.After(c.retryDelay):
		}
	}
	return err
}

// Done is closed once the consume loop has exited
func (c *KafkaConsumer) Done() <-chan struct{} {
	return c.done
}

func (c *KafkaConsumer) Close() error {
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
