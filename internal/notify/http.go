package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/order-pipeline/internal/domain"
	"github.com/TemirB/order-pipeline/internal/pkg/circuit"
)

// HTTPNotifier POSTs the order JSON to the notification service behind its own breaker.
type HTTPNotifier struct {
	url     string
	client  *http.Client
	breaker *circuit.Breaker
	logger  *zap.Logger
}

func NewHTTPNotifier(url string, timeout time.Duration, breaker *circuit.Breaker, logger *zap.Logger) *HTTPNotifier {
	return &HTTPNotifier{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
		logger:  logger,
	}
}

func (n *HTTPNotifier) Name() string { return "http" }

func (n *HTTPNotifier) Notify(ctx context.Context, order domain.Order) error {
	ticket, err := n.breaker.Allow()
	if err != nil {
		return fmt.Errorf("notify order %d: %w", order.ID, err)
	}

	err = n.post(ctx, order)
	if err != nil {
		n.breaker.Failure(ticket)
		return fmt.Errorf("notify order %d: %w", order.ID, err)
	}
	n.breaker.Success(ticket)
	return nil
}

func (n *HTTPNotifier) post(ctx context.Context, order domain.Order) error {
	body, err := json.Marshal(order)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	n.logger.Debug("notification accepted", zap.Int64("order_id", order.ID), zap.Int("status", resp.StatusCode))
	return nil
}
