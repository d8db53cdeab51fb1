package notifier

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/payment-gateway/internal/domain/notification"
)

// ErrDispatcherBusy is returned when every worker is occupied and the receipt was dropped
var ErrDispatcherBusy = errors.New("notification dispatcher busy, receipt dropped")

// ErrDispatcherClosed is returned for receipts offered after Shutdown started
var ErrDispatcherClosed = errors.New("notification dispatcher closed, receipt dropped")

// AsyncDispatcher hands receipts to a non-blocking ants pool so Notify returns
// immediately. Delivery errors are logged by the worker.
type AsyncDispatcher struct {
	next   notification.Notifier
	pool   *ants.Pool
	logger *slog.Logger
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewAsyncDispatcher(next notification.Notifier, size int, logger *slog.Logger) (*AsyncDispatcher, error) {
	pool, err := ants.NewPool(size, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &AsyncDispatcher{next: next, pool: pool, logger: logger}, nil
}

// Notify queues the receipt for delivery. The request context is detached so
// delivery outlives the call that produced the receipt.
func (d *AsyncDispatcher) Notify(ctx context.Context, userID string, receipt notification.Receipt) error {
	deliveryCtx := context.WithoutCancel(ctx)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherClosed
	}
	d.wg.Add(1)
	d.mu.Unlock()

	err := d.pool.Submit(func() {
		defer d.wg.Done()
		if err := d.next.Notify(deliveryCtx, userID, receipt); err != nil {
			d.logger.Warn("Receipt delivery failed",
				"transaction_id", receipt.TransactionID,
				"user_id", userID,
				"error", err,
			)
		}
	})
	if err != nil {
		d.wg.Done()
		if errors.Is(err, ants.ErrPoolOverload) {
			return ErrDispatcherBusy
		}
		return err
	}
	return nil
}

// Shutdown waits for queued deliveries up to ctx's deadline, then releases the pool
func (d *AsyncDispatcher) Shutdown(ctx context.Context) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		d.logger.Warn("Notification dispatcher shutdown timed out", "running_workers", d.pool.Running())
	}
	d.pool.Release()
}
