package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"futures-bot/internal/auth"
	"futures-bot/internal/exchange"
	"futures-bot/internal/orders"
)

type stubClient struct {
	raw      exchange.RawOrder
	balances []exchange.AssetBalance
	err      error
}

func (s *stubClient) Balance(ctx context.Context) ([]exchange.AssetBalance, error) {
	return s.balances, s.err
}

func (s *stubClient) SubmitOrder(ctx context.Context, p exchange.OrderParams) (exchange.RawOrder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.raw, nil
}

func newTestRouter(t *testing.T, client exchange.Client, authSvc *auth.Service) (http.Handler, string) {
	t.Helper()
	logFile := filepath.Join(t.TempDir(), "app.log")
	svc := orders.NewService(client, exchange.Native{})
	return NewRouter(RouterDeps{
		Handler:     NewHandler(svc, logFile),
		AuthService: authSvc,
	}), logFile
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, &stubClient{}, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "running" {
		t.Errorf("body = %v", body)
	}
}

func TestPlaceOrderValidationError(t *testing.T) {
	router, _ := newTestRouter(t, &stubClient{}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order",
		strings.NewReader(`{"symbol": "BTC-USDT", "side": "BUY", "order_type": "MARKET", "quantity": 0.01}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "symbol") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	client := &stubClient{raw: exchange.RawOrder{
		"orderId": json.Number("42"),
		"symbol":  "BTCUSDT",
		"status":  "NEW",
		"side":    "BUY",
		"type":    "MARKET",
	}}
	router, _ := newTestRouter(t, client, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order",
		strings.NewReader(`{"symbol": "btcusdt", "side": "buy", "order_type": "market", "quantity": "0.01"}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success bool                 `json:"success"`
		Order   exchange.OrderResult `json:"order"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Success || body.Order.OrderID != "42" {
		t.Errorf("body = %+v", body)
	}
}

func TestPlaceOrderExchangeError(t *testing.T) {
	router, _ := newTestRouter(t, &stubClient{err: exchange.ErrExchange}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order",
		strings.NewReader(`{"symbol": "BTCUSDT", "side": "BUY", "order_type": "MARKET", "quantity": 1}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestBalanceConfigurationError(t *testing.T) {
	router, _ := newTestRouter(t, &stubClient{err: exchange.ErrConfiguration}, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/balance", nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestBalanceSuccess(t *testing.T) {
	client := &stubClient{balances: []exchange.AssetBalance{
		{Asset: "USDT", Balance: "100.0", AvailableBalance: "80.0"},
	}}
	router, _ := newTestRouter(t, client, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/balance", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Balances []exchange.AssetBalance `json:"balances"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Balances) != 1 || body.Balances[0].Asset != "USDT" {
		t.Errorf("body = %+v", body)
	}
}

func TestLogs(t *testing.T) {
	router, logFile := newTestRouter(t, &stubClient{}, nil)

	// Missing file yields an empty list, not an error.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Logs []string `json:"logs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Logs) != 0 {
		t.Errorf("logs = %v, want empty", body.Logs)
	}

	if err := os.WriteFile(logFile, []byte("a\nb\nc\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logs?lines=2", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Logs) != 2 || body.Logs[0] != "b" {
		t.Errorf("logs = %v, want [b c]", body.Logs)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logs?lines=x", nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422 for bad lines param", rec.Code)
	}
}

func TestBearerAuth(t *testing.T) {
	authSvc := auth.NewService("futures-bot", []byte("secret"))
	router, _ := newTestRouter(t, &stubClient{}, authSvc)

	// Health stays open.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/balance", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated balance status = %d, want 401", rec.Code)
	}

	token, err := authSvc.SignToken("test", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/balance", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated balance status = %d, want 200", rec.Code)
	}
}
