package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/payment-gateway/internal/domain/ledger"
	"github.com/payment-gateway/internal/domain/notification"
	"github.com/payment-gateway/internal/domain/payment"
	"github.com/payment-gateway/internal/domain/pricing"
	"github.com/payment-gateway/internal/domain/provider"
	"github.com/payment-gateway/internal/domain/shared"
	"github.com/payment-gateway/internal/domain/wallet"
	"github.com/shopspring/decimal"
)

// settlement is the processing context variants settle through
type settlement struct {
	ledger   ledger.Repository
	wallets  wallet.BalanceStore
	fees     pricing.FeeStrategy
	promo    pricing.Promo
	failures provider.FailureSimulator
	notifier notification.Notifier
	now      func() time.Time
	logger   *slog.Logger
}

var _ payment.Settlement = (*settlement)(nil)

// Price applies the promo then the fee, rounding after each stage
func (s *settlement) Price(v payment.Variant) payment.Pricing {
	amount := shared.Round2(v.Amount())
	discounted := shared.Round2(s.promo.Apply(amount))
	fee := shared.Round2(s.fees.Apply(discounted, v))

	return payment.Pricing{
		Amount:     amount,
		Discounted: discounted,
		Discount:   shared.Round2(amount.Sub(discounted)),
		Fee:        fee,
		Charged:    shared.Round2(discounted.Add(fee)),
	}
}

func (s *settlement) ProviderHiccup() bool {
	return s.failures.ShouldFail()
}

func (s *settlement) Wallets() wallet.BalanceStore {
	return s.wallets
}

func (s *settlement) PersistSuccess(ctx context.Context, v payment.Variant, price payment.Pricing, idempotencyKey, message string) error {
	tx := &ledger.Transaction{
		ID:             v.TransactionID(),
		IdempotencyKey: idempotencyKey,
		UserID:         v.UserID(),
		MethodName:     v.MethodName(),
		Currency:       v.Currency(),
		OriginalAmount: price.Amount,
		CapturedAmount: price.Charged,
		TotalRefunded:  decimal.Zero,
		Status:         shared.StatusSuccess,
		Message:        message,
		MaskedInfo:     v.MaskedInfo(),
		CreatedAt:      s.now(),
	}
	if err := s.ledger.Save(ctx, tx); err != nil {
		s.logger.Error("Failed to record transaction",
			"transaction_id", tx.ID,
			"method", tx.MethodName,
			"error", err,
		)
		return fmt.Errorf("saving transaction %s: %w", tx.ID, err)
	}
	return nil
}

func (s *settlement) NotifyCharge(ctx context.Context, v payment.Variant, price payment.Pricing) {
	s.notify(ctx, notification.Receipt{
		TransactionID: v.TransactionID(),
		UserID:        v.UserID(),
		Method:        v.MethodName(),
		MaskedInfo:    v.MaskedInfo(),
		Amount:        price.Amount,
		ChargedAmount: price.Charged,
		Fee:           price.Fee,
		Discount:      price.Discount,
		Status:        shared.StatusSuccess,
		CreatedAt:     s.now(),
	})
}

// PerformRefund is the refund routine shared by every variant
func (s *settlement) PerformRefund(ctx context.Context, transactionID string, amount decimal.Decimal) payment.RefundResult {
	amount = shared.Round2(amount)
	if !amount.IsPositive() {
		return payment.FailedRefund(payment.MsgRefundNonPositive)
	}

	tx, err := s.ledger.ApplyRefund(ctx, transactionID, amount)
	switch {
	case errors.Is(err, ledger.ErrTransactionNotFound{}):
		return payment.FailedRefund(payment.MsgRefundNotFound)
	case errors.Is(err, ledger.ErrRefundExceedsRemaining):
		return payment.FailedRefund(payment.MsgRefundExceeds)
	case err != nil:
		s.logger.Error("Failed to apply refund", "transaction_id", transactionID, "error", err)
		return payment.FailedRefund(err.Error())
	}

	s.notify(ctx, notification.Receipt{
		TransactionID: tx.ID,
		UserID:        tx.UserID,
		Method:        tx.MethodName,
		MaskedInfo:    tx.MaskedInfo,
		Amount:        amount,
		ChargedAmount: amount.Neg(),
		Fee:           decimal.Zero,
		Discount:      decimal.Zero,
		Status:        shared.StatusSuccess,
		CreatedAt:     s.now(),
	})

	return payment.RefundResult{
		RefundID:       fmt.Sprintf("R-%s-%d", tx.ID, tx.RefundCount),
		Status:         shared.StatusSuccess,
		RefundedAmount: amount,
		Message:        payment.MsgRefunded,
	}
}

// notify hands the receipt to the sink; delivery problems never reach the caller
func (s *settlement) notify(ctx context.Context, receipt notification.Receipt) {
	if err := s.notifier.Notify(ctx, receipt.UserID, receipt); err != nil {
		s.logger.Warn("Receipt notification failed",
			"transaction_id", receipt.TransactionID,
			"user_id", receipt.UserID,
			"error", err,
		)
	}
}
