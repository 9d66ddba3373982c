package orders

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"futures-bot/internal/types"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput marks every validation failure. Validation always runs
// before any network call; a failed field is surfaced verbatim and the
// pipeline stops at the first failure.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}

// ValidateSymbol checks that the symbol is a non-empty letter sequence and
// returns it uppercased.
func ValidateSymbol(symbol string) (string, error) {
	if symbol == "" {
		return "", invalidf("invalid symbol %q: must be a non-empty alphabetic string (e.g. BTCUSDT)", symbol)
	}
	for _, r := range symbol {
		if !unicode.IsLetter(r) {
			return "", invalidf("invalid symbol %q: must be a non-empty alphabetic string (e.g. BTCUSDT)", symbol)
		}
	}
	return strings.ToUpper(symbol), nil
}

// ValidateSide matches the side case-insensitively against BUY/SELL.
func ValidateSide(side string) (types.OrderSide, error) {
	s := types.OrderSide(strings.ToUpper(side))
	for _, valid := range types.ValidSides {
		if s == valid {
			return s, nil
		}
	}
	return "", invalidf("invalid side %q: must be one of %s", side, joinSides(types.ValidSides))
}

// ValidateOrderType matches the order type case-insensitively against
// MARKET/LIMIT/STOP.
func ValidateOrderType(orderType string) (types.OrderType, error) {
	t := types.OrderType(strings.ToUpper(orderType))
	for _, valid := range types.ValidOrderTypes {
		if t == valid {
			return t, nil
		}
	}
	return "", invalidf("invalid order type %q: must be one of %s", orderType, joinTypes(types.ValidOrderTypes))
}

// ValidateQuantity requires a strictly positive quantity. The value is
// returned unchanged; lot-size rounding is the exchange's concern.
func ValidateQuantity(quantity decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return decimal.Decimal{}, invalidf("invalid quantity %s: must be a positive number", quantity)
	}
	return quantity, nil
}

// ValidatePrice requires a strictly positive price for LIMIT and STOP
// orders. For MARKET orders the price is accepted as given; the assembler
// forces it absent.
func ValidatePrice(price *decimal.Decimal, orderType types.OrderType) (*decimal.Decimal, error) {
	if orderType == types.OrderTypeLimit || orderType == types.OrderTypeStop {
		if price == nil || !price.IsPositive() {
			return nil, invalidf("price is required and must be a positive number for %s orders", orderType)
		}
	}
	return price, nil
}

// ValidateStopPrice requires a strictly positive stop price for STOP
// orders and forces it absent otherwise.
func ValidateStopPrice(stopPrice *decimal.Decimal, orderType types.OrderType) (*decimal.Decimal, error) {
	if orderType == types.OrderTypeStop {
		if stopPrice == nil || !stopPrice.IsPositive() {
			return nil, invalidf("stop price is required and must be a positive number for %s orders", orderType)
		}
		return stopPrice, nil
	}
	return nil, nil
}

func joinSides(sides []types.OrderSide) string {
	parts := make([]string, len(sides))
	for i, s := range sides {
		parts[i] = string(s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func joinTypes(orderTypes []types.OrderType) string {
	parts := make([]string, len(orderTypes))
	for i, t := range orderTypes {
		parts[i] = string(t)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
