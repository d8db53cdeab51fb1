// Package config provides configuration structures and validation for the gateway.
// It covers the HTTP server, the optional Kafka intake and receipt topics, the
// fee and promo schedule, the provider failure simulator and notification delivery.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the complete application configuration.
// It is validated once during startup.
type Config struct {
	Application  ApplicationConfig
	Logging      LoggingConfig
	Server       ServerConfig
	Kafka        KafkaConfig
	WorkerPool   WorkerPoolConfig
	Fees         FeesConfig
	Promo        PromoConfig
	Provider     ProviderConfig
	Notification NotificationConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// KafkaConfig contains Kafka configuration. Nothing Kafka-related starts unless Enabled.
type KafkaConfig struct {
	Enabled           bool
	Brokers           string
	RequestTopic      string // inbound payment requests
	ReceiptTopic      string // outbound receipts
	DLQTopic          string // unprocessable payment requests
	NumPartitions     int
	ReplicationFactor int
	ConsumerGroup     string
	MinBytes          int
	MaxBytes          int
	MaxWait           time.Duration
	StartOffset       int64
}

// WorkerPoolConfig bounds concurrent settlement of Kafka payment requests
type WorkerPoolConfig struct {
	Size int
}

// FeesConfig holds the per-method fee percentages
type FeesConfig struct {
	CardPercent   decimal.Decimal
	UPIPercent    decimal.Decimal
	WalletPercent decimal.Decimal
}

// PromoConfig selects the promo applied to every charge
type PromoConfig struct {
	Type  string // none, flat or percentage
	Value decimal.Decimal
}

// ProviderConfig drives the simulated provider failures for card and UPI
type ProviderConfig struct {
	FailureRate float64
	Seed        int64 // 0 seeds from the clock
}

// NotificationConfig lists the receipt channels
type NotificationConfig struct {
	Channels       []string // email, sms, kafka
	WorkerPoolSize int
}

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelKafka = "kafka"
)

var knownChannels = map[string]bool{
	ChannelEmail: true,
	ChannelSMS:   true,
	ChannelKafka: true,
}

// HasChannel reports whether the named receipt channel is configured
func (n NotificationConfig) HasChannel(name string) bool {
	for _, c := range n.Channels {
		if c == name {
			return true
		}
	}
	return false
}

// validate performs validation of all configuration values and reports every
// violation at once
func (c *Config) validate() error {
	var validationErrors []string

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	// Kafka is optional
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			validationErrors = append(validationErrors, "KAFKA_BROKERS is required")
		}
		if c.Kafka.RequestTopic == "" {
			validationErrors = append(validationErrors, "KAFKA_REQUEST_TOPIC is required")
		}
		if c.Kafka.ReceiptTopic == "" {
			validationErrors = append(validationErrors, "KAFKA_RECEIPT_TOPIC is required")
		}
		if c.Kafka.DLQTopic == "" {
			validationErrors = append(validationErrors, "KAFKA_DLQ_TOPIC is required")
		}
		if c.Kafka.ConsumerGroup == "" {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_GROUP is required")
		}
		if c.Kafka.MinBytes <= 0 {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_MIN_BYTES must be greater than 0")
		}
		if c.Kafka.MaxBytes <= 0 {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_MAX_BYTES must be greater than 0")
		}
		if c.Kafka.MaxWait <= 0 {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_MAX_WAIT must be greater than 0")
		}
	}

	// Validate WorkerPool config
	if c.WorkerPool.Size <= 0 {
		validationErrors = append(validationErrors, "WORKER_POOL_SIZE must be greater than 0")
	}

	// Validate pricing
	for name, pct := range map[string]decimal.Decimal{
		"FEE_CARD_PERCENT":   c.Fees.CardPercent,
		"FEE_UPI_PERCENT":    c.Fees.UPIPercent,
		"FEE_WALLET_PERCENT": c.Fees.WalletPercent,
	} {
		if pct.IsNegative() {
			validationErrors = append(validationErrors, name+" must not be negative")
		}
	}
	switch c.Promo.Type {
	case "none", "flat":
	case "percentage":
		if c.Promo.Value.GreaterThan(decimal.NewFromInt(100)) {
			validationErrors = append(validationErrors, "PROMO_VALUE must be at most 100 for a percentage promo")
		}
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("PROMO_TYPE %q must be one of none, flat, percentage", c.Promo.Type))
	}
	if c.Promo.Value.IsNegative() {
		validationErrors = append(validationErrors, "PROMO_VALUE must not be negative")
	}

	// Validate provider simulator
	if c.Provider.FailureRate < 0 || c.Provider.FailureRate > 1 {
		validationErrors = append(validationErrors, "PROVIDER_FAILURE_RATE must be between 0 and 1")
	}

	// Validate notification channels
	for _, ch := range c.Notification.Channels {
		if !knownChannels[ch] {
			validationErrors = append(validationErrors, fmt.Sprintf("NOTIFICATION_CHANNELS contains unknown channel %q", ch))
		}
	}
	if c.Notification.HasChannel(ChannelKafka) && !c.Kafka.Enabled {
		validationErrors = append(validationErrors, "NOTIFICATION_CHANNELS includes kafka but KAFKA_ENABLED is false")
	}
	if c.Notification.WorkerPoolSize <= 0 {
		validationErrors = append(validationErrors, "NOTIFICATION_WORKER_POOL_SIZE must be greater than 0")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
