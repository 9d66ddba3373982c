package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"futures-bot/internal/binance"
	"futures-bot/internal/config"
	"futures-bot/internal/exchange"
	"futures-bot/internal/logging"
	"futures-bot/internal/orders"

	"github.com/shopspring/decimal"
)

const divider = "===================================================="

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		usage()
		return 1
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	closer, err := logging.Setup(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	defer closer.Close()

	switch args[0] {
	case "order":
		return runOrder(cfg, args[1:])
	case "balance":
		return runBalance(cfg)
	default:
		usage()
		return 1
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  bot order -symbol BTCUSDT -side BUY -type MARKET -quantity 0.001 [-price N] [-stop-price N]")
	fmt.Fprintln(os.Stderr, "  bot balance")
}

func newService(cfg config.Config) (*orders.Service, error) {
	integ, err := exchange.ByName(cfg.ExchangeStyle)
	if err != nil {
		return nil, err
	}
	client, err := binance.New(cfg.APIKey, cfg.APISecret, cfg.FAPIBaseURL, integ)
	if err != nil {
		return nil, err
	}
	return orders.NewService(client, integ), nil
}

func runOrder(cfg config.Config, args []string) int {
	fs := flag.NewFlagSet("order", flag.ContinueOnError)
	symbol := fs.String("symbol", "", "Trading pair, e.g. BTCUSDT")
	side := fs.String("side", "", "BUY or SELL")
	orderType := fs.String("type", "", "MARKET, LIMIT, or STOP")
	quantity := fs.String("quantity", "", "Order quantity (e.g. 0.001)")
	price := fs.String("price", "", "Limit price, required for LIMIT and STOP orders")
	stopPrice := fs.String("stop-price", "", "Stop trigger price, required for STOP orders")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	req := orders.PlaceOrderRequest{
		Symbol:    *symbol,
		Side:      *side,
		OrderType: *orderType,
	}
	qty, err := decimal.NewFromString(*quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation Error: invalid quantity %q: must be a positive number\n", *quantity)
		return 1
	}
	req.Quantity = qty
	if req.Price, err = optionalDecimal("price", *price); err != nil {
		fmt.Fprintln(os.Stderr, "Validation Error:", err)
		return 1
	}
	if req.StopPrice, err = optionalDecimal("stop price", *stopPrice); err != nil {
		fmt.Fprintln(os.Stderr, "Validation Error:", err)
		return 1
	}

	printRequestSummary(req)

	svc, err := newService(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	res, err := svc.PlaceOrder(context.Background(), req)
	if err != nil {
		if errors.Is(err, orders.ErrInvalidInput) {
			fmt.Fprintln(os.Stderr, "Validation Error:", err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	fmt.Println("Order placed successfully!")
	printResponse(res)
	return 0
}

func runBalance(cfg config.Config) int {
	svc, err := newService(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	balances, err := svc.Balances(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	fmt.Println()
	fmt.Println(divider)
	fmt.Println("  Account Balance")
	fmt.Println(divider)
	if len(balances) == 0 {
		fmt.Println("  No non-zero balances found.")
	} else {
		for _, b := range balances {
			fmt.Printf("  %-8s: %18s  (available: %s)\n", b.Asset, b.Balance, b.AvailableBalance)
		}
	}
	fmt.Println(divider)
	fmt.Println()
	return 0
}

func optionalDecimal(name, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: must be a positive number", name, raw)
	}
	return &d, nil
}

func printRequestSummary(req orders.PlaceOrderRequest) {
	fmt.Println()
	fmt.Println(divider)
	fmt.Println("  Order Request Summary")
	fmt.Println(divider)
	fmt.Printf("  Symbol     : %s\n", strings.ToUpper(req.Symbol))
	fmt.Printf("  Side       : %s\n", strings.ToUpper(req.Side))
	fmt.Printf("  Type       : %s\n", strings.ToUpper(req.OrderType))
	fmt.Printf("  Quantity   : %s\n", req.Quantity)
	if req.Price != nil {
		fmt.Printf("  Price      : %s\n", req.Price)
	}
	if req.StopPrice != nil {
		fmt.Printf("  Stop Price : %s\n", req.StopPrice)
	}
	fmt.Println(divider)
	fmt.Println()
}

func printResponse(res exchange.OrderResult) {
	avgPrice := res.AvgPrice
	if avgPrice == "" {
		avgPrice = res.Price
	}
	if avgPrice == "" {
		avgPrice = "N/A"
	}
	fmt.Println()
	fmt.Println(divider)
	fmt.Println("  Order Response")
	fmt.Println(divider)
	fmt.Printf("  Order ID      : %s\n", res.OrderID)
	fmt.Printf("  Symbol        : %s\n", res.Symbol)
	fmt.Printf("  Status        : %s\n", res.Status)
	fmt.Printf("  Side          : %s\n", res.Side)
	fmt.Printf("  Type          : %s\n", res.Type)
	fmt.Printf("  Orig Qty      : %s\n", res.OrigQty)
	fmt.Printf("  Executed Qty  : %s\n", res.ExecutedQty)
	fmt.Printf("  Avg Price     : %s\n", avgPrice)
	fmt.Println(divider)
	fmt.Println()
}
