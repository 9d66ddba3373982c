package orders

import (
	"context"
	"log/slog"

	"futures-bot/internal/exchange"

	"github.com/shopspring/decimal"
)

// Service runs the order pipeline: validate, assemble, submit, normalize.
// The exchange client and integration variant are injected at construction
// so the core stays testable without network access.
type Service struct {
	client exchange.Client
	integ  exchange.Integration
}

func NewService(client exchange.Client, integ exchange.Integration) *Service {
	return &Service{client: client, integ: integ}
}

// PlaceOrderRequest is the raw caller input before validation.
type PlaceOrderRequest struct {
	Symbol    string           `json:"symbol"`
	Side      string           `json:"side"`
	OrderType string           `json:"order_type"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Price     *decimal.Decimal `json:"price"`
	StopPrice *decimal.Decimal `json:"stop_price"`
}

// Validate runs the validator chain in its fixed order and returns the
// normalized order, stopping at the first failure.
func Validate(req PlaceOrderRequest) (Order, error) {
	var o Order
	var err error
	if o.Symbol, err = ValidateSymbol(req.Symbol); err != nil {
		return Order{}, err
	}
	if o.Side, err = ValidateSide(req.Side); err != nil {
		return Order{}, err
	}
	if o.Type, err = ValidateOrderType(req.OrderType); err != nil {
		return Order{}, err
	}
	if o.Quantity, err = ValidateQuantity(req.Quantity); err != nil {
		return Order{}, err
	}
	if o.Price, err = ValidatePrice(req.Price, o.Type); err != nil {
		return Order{}, err
	}
	if o.StopPrice, err = ValidateStopPrice(req.StopPrice, o.Type); err != nil {
		return Order{}, err
	}
	return o, nil
}

// PlaceOrder submits a single order and returns the normalized result. No
// retries: a failed exchange call propagates immediately.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (exchange.OrderResult, error) {
	o, err := Validate(req)
	if err != nil {
		return exchange.OrderResult{}, err
	}
	slog.Info("order request",
		"symbol", o.Symbol,
		"side", o.Side,
		"type", o.Type,
		"qty", o.Quantity,
		"price", decimalString(o.Price),
		"stopPrice", decimalString(o.StopPrice),
	)
	params := Assemble(o, s.integ)
	raw, err := s.client.SubmitOrder(ctx, params)
	if err != nil {
		slog.Error("order failed", "symbol", o.Symbol, "err", err)
		return exchange.OrderResult{}, err
	}
	res := s.integ.NormalizeOrder(raw, string(o.Type))
	slog.Info("order placed", "orderId", res.OrderID, "status", res.Status)
	return res, nil
}

// Balances fetches the futures account balances, zero-balance assets
// already omitted by the client.
func (s *Service) Balances(ctx context.Context) ([]exchange.AssetBalance, error) {
	balances, err := s.client.Balance(ctx)
	if err != nil {
		slog.Error("balance fetch failed", "err", err)
		return nil, err
	}
	slog.Info("balance fetched", "assets", len(balances))
	return balances, nil
}

func decimalString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
