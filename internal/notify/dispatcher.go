package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/order-pipeline/internal/domain"
	"github.com/TemirB/order-pipeline/internal/observability"
	"github.com/TemirB/order-pipeline/internal/pkg/pool"
)

// Dispatcher hands notifications to a bounded worker pool. When the queue is
// full the notification is dropped: delivery is at most once.
type Dispatcher struct {
	notifier Notifier
	pool     *pool.Pool
	timeout  time.Duration
	logger   *zap.Logger
	metrics  observability.Metrics
}

func NewDispatcher(n Notifier, workers, queue int, timeout time.Duration, logger *zap.Logger, metrics observability.Metrics) *Dispatcher {
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &Dispatcher{
		notifier: n,
		pool:     pool.New(workers, queue),
		timeout:  timeout,
		logger:   logger,
		metrics:  metrics,
	}
}

// Dispatch never blocks. It reports whether the notification was queued.
func (d *Dispatcher) Dispatch(order domain.Order) bool {
	ok := d.pool.TrySubmit(func() { d.deliver(order) })
	if !ok {
		d.metrics.IncNotifyDropped()
		d.logger.Warn("notification dropped, queue full",
			zap.Int64("order_id", order.ID),
			zap.String("transport", d.notifier.Name()),
		)
	}
	return ok
}

func (d *Dispatcher) deliver(order domain.Order) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := d.notifier.Notify(ctx, order); err != nil {
		d.metrics.ObserveNotify(d.notifier.Name(), false)
		d.logger.Warn("notification failed",
			zap.Int64("order_id", order.ID),
			zap.String("transport", d.notifier.Name()),
			zap.Error(err),
		)
		return
	}
	d.metrics.ObserveNotify(d.notifier.Name(), true)
	d.logger.Info("notification sent", zap.Int64("order_id", order.ID), zap.String("transport", d.notifier.Name()))
}

// Close stops accepting notifications and waits for the queued ones.
func (d *Dispatcher) Close() {
	d.pool.Close()
	d.pool.Wait()
}
