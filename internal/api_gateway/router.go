package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/payment-gateway/internal/api_gateway/handler"
	"github.com/payment-gateway/internal/api_gateway/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	metrics Metrics,
	paymentHandler *handler.PaymentHandler,
	walletHandler *handler.WalletHandler,
) {
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))
	if metrics != nil {
		r.Use(metrics.Middleware())
	}
	r.Use(middleware.Recovery(logger))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/payments", paymentHandler.Create)

		transactions := v1.Group("/transactions")
		{
			transactions.GET("/:id", paymentHandler.GetByID)
			transactions.POST("/:id/refunds", paymentHandler.Refund)
		}

		v1.GET("/users/:id/transactions", paymentHandler.GetByUserID)

		wallets := v1.Group("/wallets")
		{
			wallets.GET("/:id", walletHandler.GetByID)
			wallets.POST("/:id/top-ups", walletHandler.TopUp)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
}
