package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/payment-gateway/internal/domain/wallet"
	"github.com/shopspring/decimal"
)

// WalletServiceImpl implements the WalletService interface
type WalletServiceImpl struct {
	wallets wallet.BalanceStore
	logger  *slog.Logger
}

func NewWalletService(logger *slog.Logger, wallets wallet.BalanceStore) WalletService {
	return &WalletServiceImpl{wallets: wallets, logger: logger}
}

// TopUp credits the wallet and returns the new balance
func (s *WalletServiceImpl) TopUp(ctx context.Context, walletID string, amount decimal.Decimal) (decimal.Decimal, error) {
	balance, err := s.wallets.TopUp(ctx, walletID, amount)
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidAmount) || errors.Is(err, wallet.ErrEmptyWalletID) {
			s.logger.Warn("Rejected wallet top-up", "wallet_id", walletID, "amount", amount.String(), "error", err)
		} else {
			s.logger.Error("Failed to top up wallet", "wallet_id", walletID, "error", err)
		}
		return decimal.Zero, err
	}
	return balance, nil
}

func (s *WalletServiceImpl) GetBalance(ctx context.Context, walletID string) (decimal.Decimal, error) {
	return s.wallets.Balance(ctx, walletID)
}
