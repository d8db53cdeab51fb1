package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/payment-gateway/internal/domain/shared"
	"github.com/payment-gateway/internal/domain/wallet"
	"github.com/shopspring/decimal"
)

const (
	MethodWallet     = "Wallet"
	walletMaskPrefix = "WALLET-****"
)

// WalletPayment debits a stored-value wallet. It never consults the
// provider failure simulator; it fails only on insufficient balance.
type WalletPayment struct {
	*base
	walletID string
}

func NewWalletPayment(c Common, walletID string) (*WalletPayment, error) {
	b, err := newBase(c)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(walletID) == "" {
		return nil, invalid("walletId", ErrEmptyWalletID)
	}
	return &WalletPayment{base: b, walletID: walletID}, nil
}

func (p *WalletPayment) MethodName() string { return MethodWallet }

// WalletID is the wallet the payment draws on
func (p *WalletPayment) WalletID() string { return p.walletID }

// MaskedInfo keeps the last four characters of the wallet id
func (p *WalletPayment) MaskedInfo() string {
	tail := p.walletID
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return walletMaskPrefix + tail
}

func (p *WalletPayment) Process(ctx context.Context, key string, s Settlement) PaymentResult {
	if !p.claim() {
		return p.failed(MsgAttemptConsumed)
	}

	price := s.Price(p)
	wallets := s.Wallets()
	if _, err := wallets.Debit(ctx, p.walletID, price.Charged); err != nil {
		if errors.Is(err, wallet.ErrInsufficientFunds) {
			return p.failed(MsgWalletInsufficient)
		}
		return p.failed(err.Error())
	}

	if err := s.PersistSuccess(ctx, p, price, key, MsgWalletCharged); err != nil {
		// nothing was recorded, so the debit is returned
		_, _ = wallets.Credit(ctx, p.walletID, price.Charged)
		return p.failed(MsgLedgerWriteFailed + ": " + err.Error())
	}
	s.NotifyCharge(ctx, p, price)

	return PaymentResult{
		TransactionID: p.transactionID,
		Status:        shared.StatusSuccess,
		ChargedAmount: price.Charged,
		Message:       MsgWalletCharged,
	}
}

// Refund credits the refunded amount back to the wallet once the ledger accepts it
func (p *WalletPayment) Refund(ctx context.Context, amount decimal.Decimal, s Settlement) RefundResult {
	return RefundWithHook(ctx, p.transactionID, amount, s, p.RefundHook())
}

// RefundHook credits the wallet; it holds the wallet id and nothing else
func (p *WalletPayment) RefundHook() RefundHook {
	walletID := p.walletID
	return func(ctx context.Context, refunded decimal.Decimal, s Settlement) error {
		if _, err := s.Wallets().Credit(ctx, walletID, refunded); err != nil {
			return fmt.Errorf("wallet credit failed: %w", err)
		}
		return nil
	}
}
