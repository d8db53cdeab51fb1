package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// LoadConfigWithName loads configuration using the specified name, auto-detecting the file type
func LoadConfigWithName(configName string) (*Config, error) {
	return loadConfig(configName, "")
}

// LoadConfigWithNameAndType loads configuration with explicit name and type specification
func LoadConfigWithNameAndType(configName, configType string) (*Config, error) {
	return loadConfig(configName, configType)
}

// LoadConfig loads configuration from a .env file using the provided base name
func LoadConfig(configName string) (*Config, error) {
	configFileName := fmt.Sprintf("%s.env", configName)
	return loadConfig(configFileName, "env")
}

// loadConfig layers configuration sources:
// 1. defaults
// 2. config file values (if found)
// 3. environment variables
// then validates the result.
func loadConfig(configName, configType string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	if configType != "" {
		v.SetConfigType(configType)
	}

	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Printf("INFO: No config file '%s' found, relying on environment variables and defaults.\n", configName)
		} else {
			fmt.Printf("WARNING: Error reading config file (%s): %v\n", v.ConfigFileUsed(), err)
		}
	} else {
		fmt.Printf("INFO: Config loaded from file: %s\n", v.ConfigFileUsed())
	}

	v.AutomaticEnv()

	config, parseErrors := buildConfig(v)
	if err := config.validate(); err != nil {
		parseErrors = append(parseErrors, err.Error())
	}
	if len(parseErrors) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.New(strings.Join(parseErrors, ", ")))
	}

	return config, nil
}

// buildConfig reads every key from v. Values that cannot be parsed are
// reported alongside validation errors rather than silently zeroed.
func buildConfig(v *viper.Viper) (*Config, []string) {
	var parseErrors []string
	decimalValue := func(key string) decimal.Decimal {
		raw := strings.TrimSpace(v.GetString(key))
		d, err := decimal.NewFromString(raw)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("%s %q is not a decimal", key, raw))
			return decimal.Zero
		}
		return d
	}

	config := &Config{
		Application: ApplicationConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
		Kafka: KafkaConfig{
			Enabled:           v.GetBool("KAFKA_ENABLED"),
			Brokers:           v.GetString("KAFKA_BROKERS"),
			RequestTopic:      v.GetString("KAFKA_REQUEST_TOPIC"),
			ReceiptTopic:      v.GetString("KAFKA_RECEIPT_TOPIC"),
			DLQTopic:          v.GetString("KAFKA_DLQ_TOPIC"),
			NumPartitions:     v.GetInt("KAFKA_NUM_PARTITIONS"),
			ReplicationFactor: v.GetInt("KAFKA_REPLICATION_FACTOR"),
			ConsumerGroup:     v.GetString("KAFKA_CONSUMER_GROUP"),
			MinBytes:          v.GetInt("KAFKA_CONSUMER_MIN_BYTES"),
			MaxBytes:          v.GetInt("KAFKA_CONSUMER_MAX_BYTES"),
			MaxWait:           v.GetDuration("KAFKA_CONSUMER_MAX_WAIT"),
			StartOffset:       v.GetInt64("KAFKA_CONSUMER_START_OFFSET"),
		},
		WorkerPool: WorkerPoolConfig{
			Size: v.GetInt("WORKER_POOL_SIZE"),
		},
		Fees: FeesConfig{
			CardPercent:   decimalValue("FEE_CARD_PERCENT"),
			UPIPercent:    decimalValue("FEE_UPI_PERCENT"),
			WalletPercent: decimalValue("FEE_WALLET_PERCENT"),
		},
		Promo: PromoConfig{
			Type:  strings.ToLower(strings.TrimSpace(v.GetString("PROMO_TYPE"))),
			Value: decimalValue("PROMO_VALUE"),
		},
		Provider: ProviderConfig{
			FailureRate: v.GetFloat64("PROVIDER_FAILURE_RATE"),
			Seed:        v.GetInt64("PROVIDER_SEED"),
		},
		Notification: NotificationConfig{
			Channels:       splitList(v.GetString("NOTIFICATION_CHANNELS")),
			WorkerPoolSize: v.GetInt("NOTIFICATION_WORKER_POOL_SIZE"),
		},
	}
	return config, parseErrors
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// setDefaults initializes configuration with development defaults.
func setDefaults(v *viper.Viper) {
	// HTTP Server defaults
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 120*time.Second)

	// Kafka defaults, used only when KAFKA_ENABLED=true
	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_REQUEST_TOPIC", "payment_requests")
	v.SetDefault("KAFKA_RECEIPT_TOPIC", "payment_receipts")
	v.SetDefault("KAFKA_DLQ_TOPIC", "payment_requests_dlq")
	v.SetDefault("KAFKA_NUM_PARTITIONS", 1)
	v.SetDefault("KAFKA_REPLICATION_FACTOR", 1)
	v.SetDefault("KAFKA_CONSUMER_GROUP", "payment-gateway-group")
	v.SetDefault("KAFKA_CONSUMER_MIN_BYTES", 10240)
	v.SetDefault("KAFKA_CONSUMER_MAX_BYTES", 10485760)
	v.SetDefault("KAFKA_CONSUMER_MAX_WAIT", time.Second)
	v.SetDefault("KAFKA_CONSUMER_START_OFFSET", 0)

	v.SetDefault("WORKER_POOL_SIZE", 10)

	// Pricing defaults
	v.SetDefault("FEE_CARD_PERCENT", "2.0")
	v.SetDefault("FEE_UPI_PERCENT", "0.5")
	v.SetDefault("FEE_WALLET_PERCENT", "1.0")
	v.SetDefault("PROMO_TYPE", "none")
	v.SetDefault("PROMO_VALUE", "0")

	v.SetDefault("PROVIDER_FAILURE_RATE", 0.05)
	v.SetDefault("PROVIDER_SEED", 0)

	v.SetDefault("NOTIFICATION_CHANNELS", "email,sms")
	v.SetDefault("NOTIFICATION_WORKER_POOL_SIZE", 16)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "payment-gateway")
}
