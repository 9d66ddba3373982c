package exchange

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrConfiguration means the client could not be constructed, typically
// because API credentials are missing. ErrExchange covers every failure
// originating from the exchange call itself; the upstream message is
// preserved in the wrapped error.
var (
	ErrConfiguration = errors.New("exchange not configured")
	ErrExchange      = errors.New("exchange error")
)

// RawOrder is an order acknowledgement exactly as the exchange returned it.
// Numbers are decoded as json.Number so 64-bit order ids survive intact.
type RawOrder map[string]any

// OrderParams is the exchange-vocabulary translation of a validated order
// request, produced by the assembler.
type OrderParams struct {
	Symbol string
	Type   string
	Side   string
	Amount decimal.Decimal
	Price  *decimal.Decimal
	Extra  map[string]string
}

// OrderResult is the single caller-facing shape every exchange response is
// normalized into. Fields the exchange omitted are empty strings, never
// absent, so display formatting stays uniform.
type OrderResult struct {
	OrderID     string `json:"orderId"`
	Symbol      string `json:"symbol"`
	Status      string `json:"status"`
	Side        string `json:"side"`
	Type        string `json:"type"`
	OrigQty     string `json:"origQty"`
	ExecutedQty string `json:"executedQty"`
	AvgPrice    string `json:"avgPrice"`
	Price       string `json:"price"`
}

type AssetBalance struct {
	Asset            string `json:"asset"`
	Balance          string `json:"balance"`
	AvailableBalance string `json:"availableBalance"`
}

// Client is the connectivity collaborator the core calls into. A failed
// call is returned as-is; the core performs no retries.
type Client interface {
	Balance(ctx context.Context) ([]AssetBalance, error)
	SubmitOrder(ctx context.Context, p OrderParams) (RawOrder, error)
}
