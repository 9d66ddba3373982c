package exchange

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Integration captures the two integration styles behind one contract:
// Native speaks the futures REST vocabulary directly (uppercase tokens,
// flat responses), Unified speaks the slash-and-settlement-suffix
// vocabulary (lowercase tokens, info-wrapped responses). The validator,
// assembler and service stay style-agnostic; only symbol/token formatting
// and response field lookup differ per variant.
type Integration interface {
	Name() string
	// FormatSymbol maps a validated symbol into the variant's pairing form.
	FormatSymbol(symbol string) string
	// FormatToken maps a side or order-type token into the variant's casing.
	FormatToken(token string) string
	// ExplicitTimeInForce reports whether limit-typed orders must carry an
	// explicit timeInForce parameter.
	ExplicitTimeInForce() bool
	// NormalizeOrder collapses a raw acknowledgement into OrderResult. It is
	// total: missing or malformed fields degrade to empty strings.
	NormalizeOrder(raw RawOrder, submittedType string) OrderResult
	// ParseBalance flattens a raw balance payload into per-asset entries,
	// omitting assets whose total and available balances are both zero.
	ParseBalance(raw any) []AssetBalance
}

// ByName returns the integration for a configured style name.
func ByName(name string) (Integration, error) {
	switch name {
	case "native":
		return Native{}, nil
	case "unified":
		return Unified{}, nil
	}
	return nil, fmt.Errorf("unknown exchange style %q", name)
}

// Native passes symbol, side and type through almost verbatim.
type Native struct{}

func (Native) Name() string { return "native" }

func (Native) FormatSymbol(symbol string) string { return symbol }

func (Native) FormatToken(token string) string { return strings.ToUpper(token) }

func (Native) ExplicitTimeInForce() bool { return true }

func (Native) NormalizeOrder(raw RawOrder, submittedType string) OrderResult {
	get := func(key string) string { return str(raw[key]) }
	typ := get("type")
	if typ == "" {
		typ = submittedType
	}
	return OrderResult{
		OrderID:     get("orderId"),
		Symbol:      get("symbol"),
		Status:      get("status"),
		Side:        get("side"),
		Type:        typ,
		OrigQty:     get("origQty"),
		ExecutedQty: get("executedQty"),
		AvgPrice:    get("avgPrice"),
		Price:       get("price"),
	}
}

func (Native) ParseBalance(raw any) []AssetBalance {
	items, _ := raw.([]any)
	out := make([]AssetBalance, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		b := AssetBalance{
			Asset:            str(m["asset"]),
			Balance:          str(m["balance"]),
			AvailableBalance: str(m["availableBalance"]),
		}
		if isZero(b.Balance) && isZero(b.AvailableBalance) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// quoteAssets are the recognized settlement suffixes, checked in order.
var quoteAssets = []string{"USDT", "BUSD"}

// Unified rewrites symbols into base/quote:settlement form and lower-cases
// side and type tokens.
type Unified struct{}

func (Unified) Name() string { return "unified" }

// FormatSymbol converts "BTCUSDT" to "BTC/USDT:USDT". A symbol without a
// recognized quote-asset suffix passes through unchanged; the exchange may
// still reject it downstream.
func (Unified) FormatSymbol(symbol string) string {
	for _, quote := range quoteAssets {
		if strings.HasSuffix(symbol, quote) && len(symbol) > len(quote) {
			base := symbol[:len(symbol)-len(quote)]
			return base + "/" + quote + ":" + quote
		}
	}
	return symbol
}

func (Unified) FormatToken(token string) string { return strings.ToLower(token) }

func (Unified) ExplicitTimeInForce() bool { return false }

// NormalizeOrder prefers the nested native "info" object, then falls back
// to the top-level unified field. Status and side from the fallback path
// are uppercased to match the native convention.
func (Unified) NormalizeOrder(raw RawOrder, submittedType string) OrderResult {
	info, _ := raw["info"].(map[string]any)
	get := func(nativeKey, unifiedKey string, upper bool) string {
		if v, ok := info[nativeKey]; ok {
			return str(v)
		}
		if v, ok := raw[unifiedKey]; ok {
			s := str(v)
			if upper {
				s = strings.ToUpper(s)
			}
			return s
		}
		return ""
	}
	typ := str(info["type"])
	if typ == "" {
		typ = submittedType
	}
	return OrderResult{
		OrderID:     get("orderId", "id", false),
		Symbol:      get("symbol", "symbol", false),
		Status:      get("status", "status", true),
		Side:        get("side", "side", true),
		Type:        typ,
		OrigQty:     get("origQty", "amount", false),
		ExecutedQty: get("executedQty", "filled", false),
		AvgPrice:    get("avgPrice", "average", false),
		Price:       get("price", "price", false),
	}
}

func (Unified) ParseBalance(raw any) []AssetBalance {
	m, _ := raw.(map[string]any)
	totals, _ := m["total"].(map[string]any)
	free, _ := m["free"].(map[string]any)
	out := make([]AssetBalance, 0, len(totals))
	for asset, total := range totals {
		b := AssetBalance{
			Asset:            asset,
			Balance:          str(total),
			AvailableBalance: str(free[asset]),
		}
		if b.AvailableBalance == "" {
			b.AvailableBalance = "0"
		}
		if isZero(b.Balance) && isZero(b.AvailableBalance) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Asset < out[j].Asset })
	return out
}

// str renders an arbitrary decoded JSON value for display. Nil becomes an
// empty string; json.Number keeps the exchange's exact digits.
func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func isZero(s string) bool {
	if s == "" {
		return true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return true
	}
	return d.IsZero()
}
