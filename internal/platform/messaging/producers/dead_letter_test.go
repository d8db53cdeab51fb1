package producers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/payment-gateway/internal/config"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDLQProducer_PublishToDLQ(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("SuccessfulPublishToDLQ", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &DLQProducer{
			logger:   testLogger(),
			writer:   mockWriter,
			dlqTopic: "payments-dlq",
			now:      func() time.Time { return fixed },
		}

		key := "original-key"
		original := []byte(`{"method":"crypto"}`)
		reason := "unknown payment method: crypto"

		mockWriter.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 || string(msgs[0].Key) != key {
				return false
			}
			var payload DeadLetter
			if err := json.Unmarshal(msgs[0].Value, &payload); err != nil {
				return false
			}
			return payload == DeadLetter{
				OriginalKey:   key,
				OriginalValue: string(original),
				Reason:        reason,
				Timestamp:     fixed.Format(time.RFC3339Nano),
			} && string(msgs[0].Headers[0].Value) == reason
		})).Return(nil).Once()

		require.NoError(t, producer.PublishToDLQ(ctx, key, original, reason))
		mockWriter.AssertExpectations(t)
	})

	t.Run("PublishToDLQReturnsErrorOnWriterError", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &DLQProducer{logger: testLogger(), writer: mockWriter, dlqTopic: "payments-dlq"}
		writerError := errors.New("kafka DLQ write error")
		mockWriter.On("WriteMessages", ctx, mock.AnythingOfType("[]kafka.Message")).Return(writerError).Once()

		err := producer.PublishToDLQ(ctx, "fail-key", []byte("x"), "bad json")
		assert.ErrorIs(t, err, writerError)
	})

	t.Run("DisabledProducer", func(t *testing.T) {
		var nilProducer *DLQProducer
		assert.ErrorIs(t, nilProducer.PublishToDLQ(ctx, "k", nil, "r"), ErrDLQDisabled)

		noWriter := &DLQProducer{logger: testLogger()}
		assert.ErrorIs(t, noWriter.PublishToDLQ(ctx, "k", nil, "r"), ErrDLQDisabled)
	})
}

func TestDLQProducer_Close(t *testing.T) {
	t.Run("SuccessfulClose", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &DLQProducer{logger: testLogger(), writer: mockWriter, dlqTopic: "payments-dlq"}
		mockWriter.On("Close").Return(nil).Once()
		require.NoError(t, producer.Close())
		mockWriter.AssertExpectations(t)
	})

	t.Run("CloseReturnsErrorOnWriterError", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &DLQProducer{logger: testLogger(), writer: mockWriter, dlqTopic: "payments-dlq"}
		closeError := errors.New("kafka DLQ close error")
		mockWriter.On("Close").Return(closeError).Once()
		assert.ErrorIs(t, producer.Close(), closeError)
	})

	t.Run("NilProducer", func(t *testing.T) {
		var p *DLQProducer
		assert.NoError(t, p.Close())
	})
}

func TestNewDLQProducer_DisabledWithoutTopic(t *testing.T) {
	p, err := NewDLQProducer(context.Background(), testLogger(), &config.KafkaConfig{})
	assert.NoError(t, err)
	assert.Nil(t, p)
}
