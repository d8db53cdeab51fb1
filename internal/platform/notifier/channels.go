// Package notifier delivers receipts to users over the configured channels.
package notifier

import (
	"context"
	"errors"
	"log/slog"

	"github.com/payment-gateway/internal/domain/notification"
)

// LogChannel renders receipts to the log under a channel name such as
// email or sms. It stands in for a real delivery provider.
type LogChannel struct {
	channel string
	logger  *slog.Logger
}

func NewEmailChannel(logger *slog.Logger) *LogChannel {
	return &LogChannel{channel: "email", logger: logger}
}

func NewSMSChannel(logger *slog.Logger) *LogChannel {
	return &LogChannel{channel: "sms", logger: logger}
}

func (c *LogChannel) Notify(_ context.Context, userID string, receipt notification.Receipt) error {
	c.logger.Info("Receipt delivered",
		"channel", c.channel,
		"user_id", userID,
		"receipt", receipt.String(),
	)
	return nil
}

// FanOut delivers each receipt to every channel. A failing channel does not
// stop delivery to the rest; all failures are joined in the returned error.
type FanOut []notification.Notifier

func (f FanOut) Notify(ctx context.Context, userID string, receipt notification.Receipt) error {
	var errs []error
	for _, n := range f {
		if err := n.Notify(ctx, userID, receipt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
