package orders

import (
	"futures-bot/internal/exchange"
	"futures-bot/internal/types"

	"github.com/shopspring/decimal"
)

// Order is a fully validated, normalized order request. Only the validator
// chain produces these; assembling an unvalidated Order is undefined.
type Order struct {
	Symbol    string
	Side      types.OrderSide
	Type      types.OrderType
	Quantity  decimal.Decimal
	Price     *decimal.Decimal
	StopPrice *decimal.Decimal
}

// Assemble translates a validated order into the integration's exchange
// vocabulary. MARKET drops any caller-supplied price. STOP becomes a
// limit-typed order carrying the stop trigger as an auxiliary parameter;
// the exchange represents stop-limit orders that way.
func Assemble(o Order, integ exchange.Integration) exchange.OrderParams {
	p := exchange.OrderParams{
		Symbol: integ.FormatSymbol(o.Symbol),
		Side:   integ.FormatToken(string(o.Side)),
		Amount: o.Quantity,
		Extra:  map[string]string{},
	}
	switch o.Type {
	case types.OrderTypeMarket:
		p.Type = integ.FormatToken(string(types.OrderTypeMarket))
	case types.OrderTypeLimit:
		p.Type = integ.FormatToken(string(types.OrderTypeLimit))
		p.Price = o.Price
		if integ.ExplicitTimeInForce() {
			p.Extra["timeInForce"] = string(types.TimeInForceGTC)
		}
	case types.OrderTypeStop:
		p.Type = integ.FormatToken(string(types.OrderTypeLimit))
		p.Price = o.Price
		p.Extra["stopPrice"] = o.StopPrice.String()
		if integ.ExplicitTimeInForce() {
			p.Extra["timeInForce"] = string(types.TimeInForceGTC)
		}
	}
	return p
}
