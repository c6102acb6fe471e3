package gateway

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/order-pipeline/internal/domain"
	"github.com/TemirB/order-pipeline/internal/observability"
	"github.com/TemirB/order-pipeline/internal/pkg/circuit"
)

// UserClient looks users up in the user service.
type UserClient struct {
	c *Client
}

func NewUserClient(baseURL string, timeout time.Duration, breaker *circuit.Breaker, logger *zap.Logger, metrics observability.Metrics) *UserClient {
	return &UserClient{c: newClient(baseURL, timeout, breaker, domain.MsgUserNotFound, logger, metrics)}
}

func (u *UserClient) Get(ctx context.Context, id int64) (*domain.RemoteUser, error) {
	var user domain.RemoteUser
	if err := u.c.get(ctx, id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ProductClient looks products up in the catalog.
type ProductClient struct {
	c *Client
}

func NewProductClient(baseURL string, timeout time.Duration, breaker *circuit.Breaker, logger *zap.Logger, metrics observability.Metrics) *ProductClient {
	return &ProductClient{c: newClient(baseURL, timeout, breaker, domain.MsgProductNotFound, logger, metrics)}
}

func (p *ProductClient) Get(ctx context.Context, id int64) (*domain.RemoteProduct, error) {
	var product domain.RemoteProduct
	if err := p.c.get(ctx, id, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
