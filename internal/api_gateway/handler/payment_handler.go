package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/payment-gateway/internal/api_gateway/middleware"
	"github.com/payment-gateway/internal/api_gateway/service"
	"github.com/payment-gateway/internal/domain/ledger"
	"github.com/payment-gateway/internal/domain/payment"
	"github.com/payment-gateway/internal/domain/shared"
)

// IdempotencyKeyHeader overrides the idempotency key in the request body
const IdempotencyKeyHeader = "Idempotency-Key"

// PaymentHandler handles HTTP requests for payments, refunds and history
type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *slog.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(logger *slog.Logger, paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// Create settles a payment. FAILED settlements are outcomes and return 200;
// only malformed or invalid requests return 400.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	idempotencyKey := req.IdempotencyKey
	if header := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)); header != "" {
		idempotencyKey = header
	}

	paymentRequest := &shared.PaymentRequest{
		TransactionID:  req.TransactionID,
		Method:         req.Method,
		Amount:         req.Amount,
		Currency:       shared.Currency(req.Currency),
		Details:        req.Details,
		UserID:         req.UserID,
		IdempotencyKey: idempotencyKey,
		CorrelationID:  middleware.GetCorrelationID(c),
		Timestamp:      time.Now().UTC(),
	}

	result, err := h.paymentService.CreatePayment(c.Request.Context(), paymentRequest)
	if err != nil {
		if payment.IsValidationError(err) || errors.Is(err, payment.ErrUnknownMethod) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to process payment", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, PaymentResponse{
		TransactionID: result.TransactionID,
		Status:        string(result.Status),
		ChargedAmount: result.ChargedAmount,
		Message:       result.Message,
	})
}

// Refund refunds part of a recorded transaction. A FAILED refund returns 422
// with the result in the body.
func (h *PaymentHandler) Refund(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid refund body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result := h.paymentService.RefundTransaction(c.Request.Context(), c.Param("id"), req.Amount)
	response := RefundResponse{
		RefundID:       result.RefundID,
		Status:         string(result.Status),
		RefundedAmount: result.RefundedAmount,
		Message:        result.Message,
	}

	if result.Status != shared.StatusSuccess {
		RespondUnprocessable(c, response)
		return
	}
	RespondOK(c, response)
}

// GetByID retrieves transaction details by its ID, returns 404 if not found
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	tx, err := h.paymentService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get transaction", "id", id, "error", err)
		RespondInternalError(c)
		return
	}

	if tx == nil {
		RespondNotFound(c, "Transaction not found")
		return
	}

	RespondOK(c, mapTransactionToResponse(tx))
}

// GetByUserID retrieves paginated transaction history for a user
func (h *PaymentHandler) GetByUserID(c *gin.Context) {
	userID := c.Param("id")

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Warn("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	txs, total, err := h.paymentService.GetTransactionsByUser(
		c.Request.Context(),
		userID,
		pagination.Page,
		pagination.PerPage,
	)
	if err != nil {
		h.logger.Error("Failed to get transactions", "user_id", userID, "error", err)
		RespondInternalError(c)
		return
	}

	transactions := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		transactions = append(transactions, mapTransactionToResponse(tx))
	}

	RespondWithPaginatedData(c, http.StatusOK, transactions, pagination.Page, pagination.PerPage, total)
}

func mapTransactionToResponse(tx *ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:  tx.ID,
		UserID:         tx.UserID,
		Method:         tx.MethodName,
		Currency:       string(tx.Currency),
		OriginalAmount: tx.OriginalAmount,
		CapturedAmount: tx.CapturedAmount,
		TotalRefunded:  tx.TotalRefunded,
		Remaining:      tx.Remaining(),
		RefundCount:    tx.RefundCount,
		Status:         string(tx.Status),
		MaskedInfo:     tx.MaskedInfo,
		CreatedAt:      tx.CreatedAt.Format(time.RFC3339),
	}
}
