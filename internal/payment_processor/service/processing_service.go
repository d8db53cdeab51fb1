package service

import (
	"context"
	"log/slog"
	"sync"
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

const msgLedgerLookupFailed = "Ledger lookup failed"

// Dependencies are the collaborators a Processor settles with.
// Promo, Failures, Notifier and Metrics fall back to no-op defaults when nil.
type Dependencies struct {
	Ledger   ledger.Repository
	Wallets  wallet.BalanceStore
	Fees     pricing.FeeStrategy
	Promo    pricing.Promo
	Failures provider.FailureSimulator
	Notifier notification.Notifier
	Metrics  MetricsRecorder
	Clock    func() time.Time
}

// Processor is the single gate for charges and refunds
type Processor struct {
	settlement *settlement
	ledger     ledger.Repository
	metrics    MetricsRecorder
	keys       *keyLock
	logger     *slog.Logger

	// refund side effects of transactions settled here, until fully refunded
	mu    sync.RWMutex
	hooks map[string]payment.RefundHook
}

var _ PaymentProcessor = (*Processor)(nil)

func NewProcessor(deps Dependencies, logger *slog.Logger) *Processor {
	if deps.Fees == nil {
		deps.Fees = pricing.NewRegistryFeeStrategy()
	}
	if deps.Promo == nil {
		deps.Promo = pricing.NoPromo{}
	}
	if deps.Failures == nil {
		deps.Failures = provider.Never
	}
	if deps.Notifier == nil {
		deps.Notifier = notification.Discard
	}
	if deps.Metrics == nil {
		deps.Metrics = noopMetrics{}
	}
	if deps.Clock == nil {
		deps.Clock = func() time.Time { return time.Now().UTC() }
	}

	return &Processor{
		settlement: &settlement{
			ledger:   deps.Ledger,
			wallets:  deps.Wallets,
			fees:     deps.Fees,
			promo:    deps.Promo,
			failures: deps.Failures,
			notifier: deps.Notifier,
			now:      deps.Clock,
			logger:   logger,
		},
		ledger:  deps.Ledger,
		metrics: deps.Metrics,
		keys:    newKeyLock(),
		logger:  logger,
		hooks:   make(map[string]payment.RefundHook),
	}
}

// Execute settles v unless a transaction is already recorded under
// idempotencyKey, in which case the stored outcome is returned and v is
// never processed. Lookup and settlement are serialized per key.
func (p *Processor) Execute(ctx context.Context, v payment.Variant, idempotencyKey string) payment.PaymentResult {
	logger := p.logger.With(
		"transaction_id", v.TransactionID(),
		"method", v.MethodName(),
		"user_id", v.UserID(),
	)

	if idempotencyKey != "" {
		unlock := p.keys.Lock(idempotencyKey)
		defer unlock()

		existing, err := p.ledger.FindByIdempotencyKey(ctx, idempotencyKey)
		if err != nil {
			logger.Error("Idempotency lookup failed", "idempotency_key", idempotencyKey, "error", err)
			return payment.PaymentResult{
				TransactionID: v.TransactionID(),
				Status:        shared.StatusFailed,
				ChargedAmount: decimal.Zero,
				Message:       msgLedgerLookupFailed,
			}
		}
		if existing != nil {
			if mismatch(existing, v) {
				logger.Warn("Idempotency key reused with a different payload, replaying stored outcome",
					"idempotency_key", idempotencyKey,
					"stored_transaction_id", existing.ID,
					"stored_method", existing.MethodName,
					"stored_amount", existing.OriginalAmount.String(),
					"amount", v.Amount().String(),
				)
			} else {
				logger.Info("Replaying stored outcome", "idempotency_key", idempotencyKey, "stored_transaction_id", existing.ID)
			}
			p.metrics.PaymentReplayed(existing.MethodName)
			return replay(existing)
		}
	}

	result := v.Process(ctx, idempotencyKey, p.settlement)
	p.metrics.PaymentProcessed(v.MethodName(), result.Status)

	if result.Status == shared.StatusSuccess {
		if hook := v.RefundHook(); hook != nil {
			p.mu.Lock()
			p.hooks[result.TransactionID] = hook
			p.mu.Unlock()
		}
		logger.Info("Payment settled", "charged", result.ChargedAmount.String(), "masked_info", v.MaskedInfo())
	} else {
		logger.Info("Payment failed", "reason", result.Message)
	}
	return result
}

// Refund refunds a recorded transaction by id. When the transaction settled
// through this processor with a refund side effect, that side effect runs too.
func (p *Processor) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) payment.RefundResult {
	p.mu.RLock()
	hook := p.hooks[transactionID]
	p.mu.RUnlock()

	result := payment.RefundWithHook(ctx, transactionID, amount, p.settlement, hook)
	p.recordRefund(ctx, transactionID, amount, result)
	return result
}

// RefundPayment refunds the transaction v produced through v's own refund
func (p *Processor) RefundPayment(ctx context.Context, v payment.Variant, amount decimal.Decimal) payment.RefundResult {
	result := v.Refund(ctx, amount, p.settlement)
	p.recordRefund(ctx, v.TransactionID(), amount, result)
	return result
}

// pendingHooks is the number of transactions whose refund side effect is retained
func (p *Processor) pendingHooks() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.hooks)
}

func (p *Processor) recordRefund(ctx context.Context, transactionID string, amount decimal.Decimal, result payment.RefundResult) {
	p.metrics.RefundProcessed(result.Status)
	if result.Status == shared.StatusSuccess {
		p.releaseIfExhausted(ctx, transactionID)
	}
	p.logger.Info("Refund processed",
		"transaction_id", transactionID,
		"amount", amount.String(),
		"refund_id", result.RefundID,
		"status", result.Status,
		"message", result.Message,
	)
}

// releaseIfExhausted drops the refund side effect once nothing is left to refund
func (p *Processor) releaseIfExhausted(ctx context.Context, transactionID string) {
	p.mu.RLock()
	_, ok := p.hooks[transactionID]
	p.mu.RUnlock()
	if !ok {
		return
	}

	tx, err := p.ledger.FindByID(ctx, transactionID)
	if err != nil || tx == nil || tx.Remaining().IsPositive() {
		return
	}
	p.mu.Lock()
	delete(p.hooks, transactionID)
	p.mu.Unlock()
}

func replay(tx *ledger.Transaction) payment.PaymentResult {
	return payment.PaymentResult{
		TransactionID: tx.ID,
		Status:        tx.Status,
		ChargedAmount: tx.CapturedAmount,
		Message:       tx.Message,
	}
}

func mismatch(tx *ledger.Transaction, v payment.Variant) bool {
	return tx.UserID != v.UserID() ||
		tx.MethodName != v.MethodName() ||
		!tx.OriginalAmount.Equal(v.Amount())
}
