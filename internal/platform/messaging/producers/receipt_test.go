package producers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/payment-gateway/internal/config"
	"github.com/payment-gateway/internal/domain/notification"
	"github.com/payment-gateway/internal/domain/shared"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleReceipt(charged string) notification.Receipt {
	return notification.Receipt{
		TransactionID: "TXN-ABCD1234",
		UserID:        "user-42",
		Method:        "Card",
		MaskedInfo:    "**** **** **** 4242",
		Amount:        decimal.RequireFromString("1000"),
		ChargedAmount: decimal.RequireFromString(charged),
		Fee:           decimal.RequireFromString("20"),
		Discount:      decimal.Zero,
		Status:        shared.StatusSuccess,
		CreatedAt:     time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestReceiptProducer_Notify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		charged  string
		wantKind string
	}{
		{name: "charge receipt", charged: "1020", wantKind: "charge"},
		{name: "refund receipt", charged: "-500", wantKind: "refund"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWriter := new(MockKafkaWriter)
			producer := &ReceiptProducer{logger: testLogger(), writer: mockWriter, topic: "receipts"}
			receipt := sampleReceipt(tt.charged)

			mockWriter.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
				if len(msgs) != 1 || string(msgs[0].Key) != "user-42" {
					return false
				}
				var payload map[string]any
				if err := json.Unmarshal(msgs[0].Value, &payload); err != nil {
					return false
				}
				return payload["kind"] == tt.wantKind &&
					payload["transaction_id"] == "TXN-ABCD1234" &&
					payload["masked_info"] == "**** **** **** 4242" &&
					payload["summary"] == receipt.String()
			})).Return(nil).Once()

			require.NoError(t, producer.Notify(ctx, "user-42", receipt))
			mockWriter.AssertExpectations(t)
		})
	}
}

func TestReceiptProducer_PublishError(t *testing.T) {
	ctx := context.Background()
	mockWriter := new(MockKafkaWriter)
	producer := &ReceiptProducer{logger: testLogger(), writer: mockWriter, topic: "receipts"}
	writerError := errors.New("kafka write error")
	mockWriter.On("WriteMessages", ctx, mock.AnythingOfType("[]kafka.Message")).Return(writerError).Once()

	err := producer.Notify(ctx, "user-1", sampleReceipt("10"))
	assert.ErrorIs(t, err, writerError)
}

func TestReceiptProducer_PublishUnmarshalable(t *testing.T) {
	producer := &ReceiptProducer{logger: testLogger(), writer: new(MockKafkaWriter), topic: "receipts"}
	err := producer.Publish(context.Background(), "k", make(chan int))
	assert.Error(t, err)
}

func TestReceiptProducer_Close(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	producer := &ReceiptProducer{logger: testLogger(), writer: mockWriter, topic: "receipts"}
	closeError := errors.New("kafka close error")
	mockWriter.On("Close").Return(closeError).Once()

	assert.ErrorIs(t, producer.Close(), closeError)
}

func TestNewReceiptProducer_RequiresTopic(t *testing.T) {
	_, err := NewReceiptProducer(context.Background(), testLogger(), &config.KafkaConfig{Brokers: "localhost:9092"})
	assert.Error(t, err)
}
