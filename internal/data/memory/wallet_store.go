package memory

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/payment-gateway/internal/domain/shared"
	"github.com/payment-gateway/internal/domain/wallet"
	"github.com/shopspring/decimal"
)

// WalletStore implements wallet.BalanceStore with one mutex over all balances.
// Every operation is a single critical section, so a debit's balance check
// and deduction cannot interleave with another debit on the same wallet.
type WalletStore struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
	logger   *slog.Logger
}

func NewWalletStore(logger *slog.Logger) *WalletStore {
	return &WalletStore{
		balances: make(map[string]decimal.Decimal),
		logger:   logger,
	}
}

// Balance returns the wallet balance; unknown wallets have a zero balance
func (s *WalletStore) Balance(_ context.Context, walletID string) (decimal.Decimal, error) {
	if strings.TrimSpace(walletID) == "" {
		return decimal.Zero, wallet.ErrEmptyWalletID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[walletID], nil
}

// TopUp adds funds to a wallet, creating it if needed
func (s *WalletStore) TopUp(ctx context.Context, walletID string, amount decimal.Decimal) (decimal.Decimal, error) {
	amount = shared.Round2(amount)
	if !amount.IsPositive() {
		return decimal.Zero, wallet.ErrInvalidAmount
	}
	balance, err := s.add(walletID, amount)
	if err != nil {
		return decimal.Zero, err
	}
	s.logger.Info("Wallet topped up", "wallet_id", walletID, "amount", amount.String(), "balance", balance.String())
	return balance, nil
}

// Debit deducts amount if the balance covers it, otherwise returns ErrInsufficientFunds
// and leaves the balance unchanged. A zero debit always succeeds.
func (s *WalletStore) Debit(_ context.Context, walletID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if strings.TrimSpace(walletID) == "" {
		return decimal.Zero, wallet.ErrEmptyWalletID
	}
	amount = shared.Round2(amount)
	if amount.IsNegative() {
		return decimal.Zero, wallet.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance := s.balances[walletID]
	if balance.LessThan(amount) {
		return balance, wallet.ErrInsufficientFunds
	}
	balance = shared.Round2(balance.Sub(amount))
	s.balances[walletID] = balance
	return balance, nil
}

// Credit returns funds to a wallet
func (s *WalletStore) Credit(_ context.Context, walletID string, amount decimal.Decimal) (decimal.Decimal, error) {
	amount = shared.Round2(amount)
	if !amount.IsPositive() {
		return decimal.Zero, wallet.ErrInvalidAmount
	}
	return s.add(walletID, amount)
}

func (s *WalletStore) add(walletID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if strings.TrimSpace(walletID) == "" {
		return decimal.Zero, wallet.ErrEmptyWalletID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	balance := shared.Round2(s.balances[walletID].Add(amount))
	s.balances[walletID] = balance
	return balance, nil
}
