package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/payment-gateway/internal/api_gateway"
	apiservice "github.com/payment-gateway/internal/api_gateway/service"
	"github.com/payment-gateway/internal/config"
	"github.com/payment-gateway/internal/data/memory"
	"github.com/payment-gateway/internal/domain/notification"
	"github.com/payment-gateway/internal/domain/payment"
	"github.com/payment-gateway/internal/logger"
	"github.com/payment-gateway/internal/observability"
	"github.com/payment-gateway/internal/payment_processor/components"
	"github.com/payment-gateway/internal/payment_processor/consumer"
	"github.com/payment-gateway/internal/payment_processor/service"
	"github.com/payment-gateway/internal/platform/messaging/consumers"
	"github.com/payment-gateway/internal/platform/messaging/producers"
)

func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("payment_gateway")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	log.Info("Starting Payment Gateway",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
		"kafka_enabled", cfg.Kafka.Enabled,
	)

	ledgerRepo := memory.NewLedgerRepository(log.With("component", "ledger"))
	wallets := memory.NewWalletStore(log.With("component", "wallets"))
	metrics := observability.NewMetrics(cfg.Application.Name)

	var (
		receiptProducer *producers.ReceiptProducer
		dlqProducer     *producers.DLQProducer
		kafkaReceipts   notification.Notifier
		deadLetters     producers.DeadLetterPublisher
	)
	if cfg.Kafka.Enabled {
		if cfg.Notification.HasChannel(config.ChannelKafka) {
			receiptProducer, err = producers.NewReceiptProducer(appCtx, log, &cfg.Kafka)
			if err != nil {
				log.Error("Failed to initialize receipt Kafka producer", "error", err)
				os.Exit(1)
			}
			kafkaReceipts = receiptProducer
		}

		dlqProducer, err = producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
		if err != nil {
			log.Error("Failed to initialize DLQ Kafka producer", "error", err)
			os.Exit(1)
		}
		if dlqProducer != nil {
			deadLetters = dlqProducer
		}
	}

	dispatcher, err := components.CreateNotifier(cfg, kafkaReceipts, log)
	if err != nil {
		log.Error("Failed to initialize notifier", "error", err)
		os.Exit(1)
	}

	processor, err := components.CreateProcessor(cfg, ledgerRepo, wallets, dispatcher, metrics, log)
	if err != nil {
		log.Error("Failed to initialize payment processor", "error", err)
		os.Exit(1)
	}

	factory := payment.NewDefaultFactory(payment.NewTransactionID)
	processingService := components.CreateProcessingService(factory, processor, log, cfg)

	paymentService := apiservice.NewPaymentService(log, processingService, processor, ledgerRepo)
	walletService := apiservice.NewWalletService(log, wallets)
	server := api_gateway.NewServer(log, cfg, paymentService, walletService, metrics)

	errChan := make(chan error, 2)
	var wg sync.WaitGroup

	go func() {
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var kafkaConsumer *consumers.KafkaConsumer
	if cfg.Kafka.Enabled {
		kafkaConsumer = consumers.NewKafkaConsumer(appCtx, log, &cfg.Kafka)
		requestHandler := consumer.NewPaymentRequestHandler(log, processingService, deadLetters)

		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info("Starting Kafka consumer",
				"topic", cfg.Kafka.RequestTopic,
				"group", cfg.Kafka.ConsumerGroup,
			)
			if err := kafkaConsumer.Subscribe(appCtx, cfg.Kafka.RequestTopic, cfg.Kafka.ConsumerGroup, requestHandler.HandleMessage); err != nil {
				errChan <- fmt.Errorf("kafka consumer error: %w", err)
				return
			}
			<-kafkaConsumer.Done()
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serviceErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Service error occurred", "error", err)
		serviceErr = err
	}

	log.Info("Starting graceful shutdown...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout+5*time.Second)
	defer cancelShutdown()

	// stop intake first so no new payments arrive while draining
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping HTTP server", "error", err)
	}
	cancelAppCtx()

	wgChan := make(chan struct{})
	go func() {
		wg.Wait()
		close(wgChan)
	}()
	select {
	case <-wgChan:
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout reached waiting for consumer")
	}

	if wpService, ok := processingService.(*service.WorkerPoolProcessingService); ok {
		log.Info("Shutting down worker pool", "running_workers", wpService.Running())
		wpService.Shutdown()
	}

	dispatcher.Shutdown(shutdownCtx)

	if kafkaConsumer != nil {
		if err := kafkaConsumer.Close(); err != nil {
			log.Error("Error closing Kafka consumer", "error", err)
		}
	}
	if dlqProducer != nil {
		if err := dlqProducer.Close(); err != nil {
			log.Error("Error closing DLQ Kafka producer", "error", err)
		}
	}
	if receiptProducer != nil {
		if err := receiptProducer.Close(); err != nil {
			log.Error("Error closing receipt Kafka producer", "error", err)
		}
	}

	if serviceErr != nil {
		log.Error("Payment Gateway shutdown with errors", "error", serviceErr)
		os.Exit(1)
	}
	log.Info("Payment Gateway shutdown completed successfully")
}
