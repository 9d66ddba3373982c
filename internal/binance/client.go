// Package binance is the connectivity collaborator for Binance USDT-M
// futures demo trading. It signs requests, submits them, and hands raw
// payloads back to the integration for shape normalization.
package binance

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"futures-bot/internal/exchange"

	"github.com/google/uuid"
)

const (
	balancePath = "/fapi/v2/balance"
	orderPath   = "/fapi/v1/order"
	recvWindow  = "5000"
)

type Client struct {
	apiKey    string
	apiSecret string
	baseURL   string
	integ     exchange.Integration
	http      *http.Client
}

// New builds a client for the demo REST API. Missing credentials fail
// immediately with ErrConfiguration; nothing is retried later.
func New(apiKey, apiSecret, baseURL string, integ exchange.Integration) (*Client, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("%w: set BINANCE_API_KEY and BINANCE_API_SECRET in the environment or .env file", exchange.ErrConfiguration)
	}
	return &Client{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		integ:     integ,
		http:      &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Balance fetches the futures account balances. Assets with zero total and
// available balance are omitted by the integration.
func (c *Client) Balance(ctx context.Context) ([]exchange.AssetBalance, error) {
	body, err := c.signedRequest(ctx, http.MethodGet, balancePath, url.Values{})
	if err != nil {
		return nil, err
	}
	raw, err := decodeJSON(body)
	if err != nil {
		return nil, err
	}
	return c.integ.ParseBalance(raw), nil
}

// SubmitOrder posts a single order and returns the acknowledgement payload
// as the exchange sent it.
func (c *Client) SubmitOrder(ctx context.Context, p exchange.OrderParams) (exchange.RawOrder, error) {
	v := url.Values{}
	v.Set("symbol", p.Symbol)
	v.Set("side", p.Side)
	v.Set("type", p.Type)
	v.Set("quantity", p.Amount.String())
	if p.Price != nil {
		v.Set("price", p.Price.String())
	}
	for k, val := range p.Extra {
		v.Set(k, val)
	}
	v.Set("newClientOrderId", "bot-"+uuid.NewString())

	body, err := c.signedRequest(ctx, http.MethodPost, orderPath, v)
	if err != nil {
		return nil, err
	}
	raw, err := decodeJSON(body)
	if err != nil {
		return nil, err
	}
	order, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected order response shape: %s", exchange.ErrExchange, truncate(body))
	}
	return exchange.RawOrder(order), nil
}

func (c *Client) signedRequest(ctx context.Context, method, path string, v url.Values) ([]byte, error) {
	v.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))
	v.Set("recvWindow", recvWindow)
	query := v.Encode()
	query += "&signature=" + c.sign(query)

	var req *http.Request
	var err error
	if method == http.MethodGet {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+query, nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, strings.NewReader(query))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exchange.ErrExchange, err)
	}
	req.Header.Set("X-MBX-APIKEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", exchange.ErrExchange, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", exchange.ErrExchange, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Code int64  `json:"code"`
			Msg  string `json:"msg"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Msg != "" {
			return nil, fmt.Errorf("%w: %s (code %d)", exchange.ErrExchange, apiErr.Msg, apiErr.Code)
		}
		return nil, fmt.Errorf("%w: http %d: %s", exchange.ErrExchange, resp.StatusCode, truncate(body))
	}
	return body, nil
}

// sign computes the HMAC-SHA256 hex signature over the encoded query.
func (c *Client) sign(query string) string {
	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write([]byte(query))
	return hex.EncodeToString(mac.Sum(nil))
}

// decodeJSON keeps numbers as json.Number so 64-bit order ids and exact
// decimal strings survive normalization.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", exchange.ErrExchange, err)
	}
	return raw, nil
}

func truncate(body []byte) string {
	const max = 256
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
