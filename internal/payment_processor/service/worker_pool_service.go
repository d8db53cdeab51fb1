package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/panjf2000/ants/v2"
	"github.com/payment-gateway/internal/domain/payment"
	"github.com/payment-gateway/internal/domain/shared"
)

// WorkerPoolProcessingService bounds how many payments settle at once by
// running the wrapped service on an ants pool. Callers still wait for their result.
type WorkerPoolProcessingService struct {
	baseService ProcessingService
	pool        *ants.Pool
	logger      *slog.Logger
}

type WorkerPoolConfig struct {
	Size int
}

type poolResult struct {
	result payment.PaymentResult
	err    error
}

func NewWorkerPoolProcessingService(
	baseService ProcessingService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolProcessingService, error) {
	if config.Size <= 0 {
		return nil, fmt.Errorf("worker pool size must be positive, got %d", config.Size)
	}
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolProcessingService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
	}, nil
}

// ProcessPayment submits the request to the pool and waits for its result
func (s *WorkerPoolProcessingService) ProcessPayment(ctx context.Context, request *shared.PaymentRequest) (payment.PaymentResult, error) {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	resultChan := make(chan poolResult, 1)
	requestCopy := *request

	err := s.pool.Submit(func() {
		result, err := s.baseService.ProcessPayment(ctx, &requestCopy)
		resultChan <- poolResult{result: result, err: err}
	})
	if err != nil {
		logger.Error("Failed to submit payment to worker pool",
			"method", request.Method,
			"user_id", request.UserID,
			"error", err,
		)
		return payment.PaymentResult{}, err
	}

	res := <-resultChan
	return res.result, res.err
}

// Shutdown releases the pool
func (s *WorkerPoolProcessingService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

func (s *WorkerPoolProcessingService) Running() int {
	return s.pool.Running()
}

func (s *WorkerPoolProcessingService) Capacity() int {
	return s.pool.Cap()
}
