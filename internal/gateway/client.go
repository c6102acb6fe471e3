package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/order-pipeline/internal/domain"
	"github.com/TemirB/order-pipeline/internal/observability"
	"github.com/TemirB/order-pipeline/internal/pkg/circuit"
)

const maxErrorBody = 64 << 10

// problem is an RFC 7807 body.
type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// Client performs one GET per lookup behind a breaker and maps every outcome
// onto a domain error kind.
type Client struct {
	name        string
	baseURL     string
	http        *http.Client
	breaker     *circuit.Breaker
	notFoundKey string
	logger      *zap.Logger
	metrics     observability.Metrics
}

func newClient(baseURL string, timeout time.Duration, breaker *circuit.Breaker, notFoundKey string, logger *zap.Logger, metrics observability.Metrics) *Client {
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &Client{
		name:        breaker.Name(),
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        &http.Client{Timeout: timeout},
		breaker:     breaker,
		notFoundKey: notFoundKey,
		logger:      logger.Named(breaker.Name()),
		metrics:     metrics,
	}
}

func (c *Client) get(ctx context.Context, id int64, out any) error {
	op := c.name + ".Get"

	ticket, err := c.breaker.Allow()
	if err != nil {
		c.metrics.ObserveRemote(c.name, "rejected", 0)
		c.logger.Warn("call rejected", zap.Int64("id", id), zap.Error(err))
		return domain.Unavailable(op, err)
	}

	start := time.Now()
	err = c.do(ctx, op, id, out)
	durMs := float64(time.Since(start).Microseconds()) / 1000.0

	kind := domain.KindOf(err)
	switch {
	case err == nil, kind == domain.KindNotFound, kind == domain.KindValidation:
		c.breaker.Success(ticket)
	case ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled):
		// caller gave up, the collaborator did not fail
		c.breaker.Success(ticket)
	default:
		c.breaker.Failure(ticket)
	}

	outcome := "ok"
	if err != nil {
		outcome = strings.ReplaceAll(kind.String(), " ", "_")
		c.logger.Debug("call failed", zap.Int64("id", id), zap.Float64("dur_ms", durMs), zap.Error(err))
	}
	c.metrics.ObserveRemote(c.name, outcome, durMs)
	return err
}

func (c *Client) do(ctx context.Context, op string, id int64, out any) error {
	url := c.baseURL + "/" + strconv.FormatInt(id, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Fatal(op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Unavailable(op, err)
	}
	defer resp.Body.Close()

	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return domain.Fatal(op, fmt.Errorf("decode body: %w", err))
		}
		return nil
	case code == http.StatusNotFound:
		return domain.NotFound(op, c.notFoundKey, id)
	case code == http.StatusServiceUnavailable:
		return domain.Unavailable(op, fmt.Errorf("status %d: %s", code, problemDetail(resp)))
	case code >= 400 && code < 500:
		return domain.ValidationDetail(op, problemDetail(resp))
	case code >= 500:
		return domain.ServiceError(op, fmt.Errorf("status %d: %s", code, problemDetail(resp)))
	default:
		return domain.Fatal(op, fmt.Errorf("unexpected status %d", code))
	}
}

// problemDetail reads the detail of an RFC 7807 body, falling back to its title
// and then to the status text.
func problemDetail(resp *http.Response) string {
	var p problem
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil && len(body) > 0 && json.Unmarshal(body, &p) == nil {
		if p.Detail != "" {
			return p.Detail
		}
		if p.Title != "" {
			return p.Title
		}
	}
	return http.StatusText(resp.StatusCode)
}
