package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/payment-gateway/internal/domain/ledger"
	"github.com/payment-gateway/internal/domain/payment"
	"github.com/payment-gateway/internal/domain/shared"
	processor "github.com/payment-gateway/internal/payment_processor/service"
	"github.com/shopspring/decimal"
)

// PaymentServiceImpl implements the PaymentService interface
type PaymentServiceImpl struct {
	processingService processor.ProcessingService
	refunds           processor.PaymentProcessor
	ledgerRepo        ledger.Repository
	logger            *slog.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	logger *slog.Logger,
	processingService processor.ProcessingService,
	refunds processor.PaymentProcessor,
	ledgerRepo ledger.Repository,
) PaymentService {
	return &PaymentServiceImpl{
		processingService: processingService,
		refunds:           refunds,
		ledgerRepo:        ledgerRepo,
		logger:            logger,
	}
}

func (s *PaymentServiceImpl) CreatePayment(ctx context.Context, request *shared.PaymentRequest) (payment.PaymentResult, error) {
	return s.processingService.ProcessPayment(ctx, request)
}

func (s *PaymentServiceImpl) RefundTransaction(ctx context.Context, transactionID string, amount decimal.Decimal) payment.RefundResult {
	return s.refunds.Refund(ctx, transactionID, amount)
}

// GetTransactionByID retrieves a transaction by its ID. Returns nil if not found
func (s *PaymentServiceImpl) GetTransactionByID(ctx context.Context, transactionID string) (*ledger.Transaction, error) {
	tx, err := s.ledgerRepo.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, ledger.ErrTransactionNotFound{}) {
			s.logger.Info("Transaction not found", "transaction_id", transactionID)
			return nil, nil
		}
		s.logger.Error("Failed to get transaction by ID", "transaction_id", transactionID, "error", err)
		return nil, err
	}
	return tx, nil
}

// GetTransactionsByUser pages over the user's history; a page past the end is empty
func (s *PaymentServiceImpl) GetTransactionsByUser(ctx context.Context, userID string, page, perPage int) ([]*ledger.Transaction, int, error) {
	all, err := s.ledgerRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get transactions by user", "user_id", userID, "error", err)
		return nil, 0, err
	}

	total := len(all)
	if page < 1 || perPage < 1 {
		return []*ledger.Transaction{}, total, nil
	}
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	if page > pages {
		return []*ledger.Transaction{}, total, nil
	}

	offset := (page - 1) * perPage
	end := total
	if perPage < total-offset {
		end = offset + perPage
	}
	return all[offset:end], total, nil
}
