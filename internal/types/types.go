package types

type OrderSide string

type OrderType string

type TimeInForce string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeStop   OrderType = "STOP"
)

const (
	TimeInForceGTC TimeInForce = "GTC"
)

// ValidSides and ValidOrderTypes are sorted so validation errors can list
// the accepted values in a stable order.
var (
	ValidSides      = []OrderSide{OrderSideBuy, OrderSideSell}
	ValidOrderTypes = []OrderType{OrderTypeLimit, OrderTypeMarket, OrderTypeStop}
)
