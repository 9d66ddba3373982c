package orders

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"futures-bot/internal/exchange"

	"github.com/shopspring/decimal"
)

type fakeClient struct {
	submitted []exchange.OrderParams
	raw       exchange.RawOrder
	balances  []exchange.AssetBalance
	err       error
}

func (f *fakeClient) Balance(ctx context.Context) ([]exchange.AssetBalance, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.balances, nil
}

func (f *fakeClient) SubmitOrder(ctx context.Context, p exchange.OrderParams) (exchange.RawOrder, error) {
	f.submitted = append(f.submitted, p)
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

func TestPlaceOrderSuccess(t *testing.T) {
	client := &fakeClient{raw: exchange.RawOrder{
		"info": map[string]any{
			"orderId": json.Number("12345"),
			"symbol":  "BTCUSDT",
			"status":  "NEW",
			"side":    "BUY",
			"type":    "MARKET",
		},
	}}
	svc := NewService(client, exchange.Unified{})
	res, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Symbol:    "btcusdt",
		Side:      "buy",
		OrderType: "market",
		Quantity:  decimal.RequireFromString("0.01"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OrderID != "12345" || res.Status != "NEW" {
		t.Errorf("result = %+v", res)
	}
	if len(client.submitted) != 1 {
		t.Fatalf("submitted %d orders, want 1", len(client.submitted))
	}
	if client.submitted[0].Symbol != "BTC/USDT:USDT" || client.submitted[0].Side != "buy" {
		t.Errorf("submitted params = %+v", client.submitted[0])
	}
}

func TestPlaceOrderInvalidInputSkipsClient(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client, exchange.Native{})
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Symbol:    "BTCUSDT",
		Side:      "BUY",
		OrderType: "LIMIT",
		Quantity:  decimal.RequireFromString("0.5"),
		// price missing
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "price is required") {
		t.Errorf("error must mention price is required, got %q", err)
	}
	if len(client.submitted) != 0 {
		t.Errorf("client must not be called on validation failure")
	}
}

func TestPlaceOrderExchangeErrorPropagates(t *testing.T) {
	client := &fakeClient{err: exchange.ErrExchange}
	svc := NewService(client, exchange.Native{})
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Symbol:    "BTCUSDT",
		Side:      "BUY",
		OrderType: "MARKET",
		Quantity:  decimal.RequireFromString("0.01"),
	})
	if !errors.Is(err, exchange.ErrExchange) {
		t.Fatalf("want ErrExchange, got %v", err)
	}
}

func TestBalancesPassThrough(t *testing.T) {
	client := &fakeClient{balances: []exchange.AssetBalance{
		{Asset: "USDT", Balance: "100.0", AvailableBalance: "80.0"},
	}}
	svc := NewService(client, exchange.Native{})
	got, err := svc.Balances(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Asset != "USDT" {
		t.Errorf("balances = %+v", got)
	}

	client.err = exchange.ErrExchange
	if _, err := svc.Balances(context.Background()); !errors.Is(err, exchange.ErrExchange) {
		t.Errorf("want ErrExchange, got %v", err)
	}
}
