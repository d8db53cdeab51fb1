package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/payment-gateway/internal/api_gateway/service"
	"github.com/payment-gateway/internal/domain/wallet"
)

// WalletHandler handles HTTP requests for wallet balances
type WalletHandler struct {
	walletService service.WalletService
	logger        *slog.Logger
}

func NewWalletHandler(logger *slog.Logger, walletService service.WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		logger:        logger,
	}
}

// TopUp adds funds to a wallet
func (h *WalletHandler) TopUp(c *gin.Context) {
	walletID := c.Param("id")

	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	balance, err := h.walletService.TopUp(c.Request.Context(), walletID, req.Amount)
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidAmount) || errors.Is(err, wallet.ErrEmptyWalletID) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to top up wallet", "wallet_id", walletID, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, WalletResponse{WalletID: walletID, Balance: balance})
}

// GetByID returns the wallet's current balance; unknown wallets hold zero
func (h *WalletHandler) GetByID(c *gin.Context) {
	walletID := c.Param("id")

	balance, err := h.walletService.GetBalance(c.Request.Context(), walletID)
	if err != nil {
		if errors.Is(err, wallet.ErrEmptyWalletID) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to get wallet balance", "wallet_id", walletID, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, WalletResponse{WalletID: walletID, Balance: balance})
}
