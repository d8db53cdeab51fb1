package components

import (
	"fmt"
	"log/slog"

	"github.com/payment-gateway/internal/config"
	"github.com/payment-gateway/internal/domain/ledger"
	"github.com/payment-gateway/internal/domain/notification"
	"github.com/payment-gateway/internal/domain/payment"
	"github.com/payment-gateway/internal/domain/pricing"
	"github.com/payment-gateway/internal/domain/provider"
	"github.com/payment-gateway/internal/domain/wallet"
	"github.com/payment-gateway/internal/payment_processor/service"
	"github.com/payment-gateway/internal/platform/notifier"
)

// CreateFeeStrategy registers the configured fee percentage for each built-in method
func CreateFeeStrategy(cfg *config.Config) *pricing.RegistryFeeStrategy {
	return pricing.NewRegistryFeeStrategy().
		Register(payment.MethodCard, cfg.Fees.CardPercent).
		Register(payment.MethodUPI, cfg.Fees.UPIPercent).
		Register(payment.MethodWallet, cfg.Fees.WalletPercent)
}

// CreateProcessor wires the processor with its pricing pipeline and failure simulator
func CreateProcessor(
	cfg *config.Config,
	ledgerRepo ledger.Repository,
	wallets wallet.BalanceStore,
	receipts notification.Notifier,
	metrics service.MetricsRecorder,
	logger *slog.Logger,
) (*service.Processor, error) {
	promo, err := pricing.NewPromo(cfg.Promo.Type, cfg.Promo.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to build promo: %w", err)
	}

	var failures provider.FailureSimulator = provider.Never
	if cfg.Provider.FailureRate > 0 {
		failures = provider.NewRandomFailureSimulator(cfg.Provider.FailureRate, cfg.Provider.Seed)
	}

	logger.Info("Creating payment processor",
		"fee_card", cfg.Fees.CardPercent.String(),
		"fee_upi", cfg.Fees.UPIPercent.String(),
		"fee_wallet", cfg.Fees.WalletPercent.String(),
		"promo_type", cfg.Promo.Type,
		"promo_value", cfg.Promo.Value.String(),
		"failure_rate", cfg.Provider.FailureRate,
	)

	return service.NewProcessor(service.Dependencies{
		Ledger:   ledgerRepo,
		Wallets:  wallets,
		Fees:     CreateFeeStrategy(cfg),
		Promo:    promo,
		Failures: failures,
		Notifier: receipts,
		Metrics:  metrics,
	}, logger.With("component", "processor")), nil
}

// CreateNotifier fans receipts out to every configured channel behind an
// asynchronous dispatcher. kafkaReceipts may be nil when Kafka is disabled.
func CreateNotifier(cfg *config.Config, kafkaReceipts notification.Notifier, logger *slog.Logger) (*notifier.AsyncDispatcher, error) {
	var channels notifier.FanOut
	for _, name := range cfg.Notification.Channels {
		switch name {
		case config.ChannelEmail:
			channels = append(channels, notifier.NewEmailChannel(logger))
		case config.ChannelSMS:
			channels = append(channels, notifier.NewSMSChannel(logger))
		case config.ChannelKafka:
			if kafkaReceipts == nil {
				logger.Warn("Kafka receipt channel configured without a producer, skipping")
				continue
			}
			channels = append(channels, kafkaReceipts)
		default:
			return nil, fmt.Errorf("unknown notification channel %q", name)
		}
	}

	dispatcher, err := notifier.NewAsyncDispatcher(channels, cfg.Notification.WorkerPoolSize, logger.With("component", "notifier"))
	if err != nil {
		return nil, fmt.Errorf("failed to create notification dispatcher: %w", err)
	}
	logger.Info("Created notification dispatcher", "channels", cfg.Notification.Channels, "pool_size", cfg.Notification.WorkerPoolSize)
	return dispatcher, nil
}

// CreateProcessingService creates the request-level service, bounded by a
// worker pool when one can be built.
func CreateProcessingService(
	factory service.VariantFactory,
	processor service.PaymentProcessor,
	logger *slog.Logger,
	cfg *config.Config,
) service.ProcessingService {
	baseService := service.NewRequestProcessingService(factory, processor, logger)

	workerPoolService, err := service.NewWorkerPoolProcessingService(
		baseService,
		service.WorkerPoolConfig{
			Size: cfg.WorkerPool.Size,
		},
		logger.With("component", "worker_pool"),
	)

	if err != nil {
		logger.Error("Failed to create worker pool service, falling back to base service", "error", err)
		return baseService
	}

	logger.Info("Created worker pool processing service", "pool_size", cfg.WorkerPool.Size)
	return workerPoolService
}
