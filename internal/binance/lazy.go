package binance

import (
	"context"
	"sync"

	"futures-bot/internal/exchange"
)

// LazyClient defers client construction to the first exchange call and
// reuses the handle for the rest of the process lifetime. A construction
// failure (missing credentials) is not cached, so fixing the environment
// and retrying works without a restart of the caller.
type LazyClient struct {
	mu     sync.Mutex
	client *Client
	build  func() (*Client, error)
}

func NewLazy(build func() (*Client, error)) *LazyClient {
	return &LazyClient{build: build}
}

func (l *LazyClient) get() (*Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.client == nil {
		c, err := l.build()
		if err != nil {
			return nil, err
		}
		l.client = c
	}
	return l.client, nil
}

func (l *LazyClient) Balance(ctx context.Context) ([]exchange.AssetBalance, error) {
	c, err := l.get()
	if err != nil {
		return nil, err
	}
	return c.Balance(ctx)
}

func (l *LazyClient) SubmitOrder(ctx context.Context, p exchange.OrderParams) (exchange.RawOrder, error) {
	c, err := l.get()
	if err != nil {
		return nil, err
	}
	return c.SubmitOrder(ctx, p)
}
