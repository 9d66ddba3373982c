package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string
	APIKey        string
	APISecret     string
	FAPIBaseURL   string
	ExchangeStyle string
	LogFile       string
	AuthSecret    string
	AuthIssuer    string
}

const (
	defaultHTTPAddr = ":8000"
	defaultFAPIURL  = "https://testnet.binancefuture.com"
	defaultLogFile  = "app.log"
	defaultIssuer   = "futures-bot"
)

// Load reads configuration from the environment, after loading a .env file
// if one is present. Exchange credentials are deliberately not required
// here: the client reports them missing at construction time, so routes
// that never touch the exchange (health, logs) still work without keys.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	c.APIKey = os.Getenv("BINANCE_API_KEY")
	c.APISecret = os.Getenv("BINANCE_API_SECRET")
	c.HTTPAddr = os.Getenv("HTTP_ADDR")
	if c.HTTPAddr == "" {
		c.HTTPAddr = defaultHTTPAddr
	}
	c.FAPIBaseURL = os.Getenv("BINANCE_FAPI_URL")
	if c.FAPIBaseURL == "" {
		c.FAPIBaseURL = defaultFAPIURL
	}
	c.ExchangeStyle = os.Getenv("EXCHANGE_STYLE")
	if c.ExchangeStyle == "" {
		c.ExchangeStyle = "native"
	}
	if c.ExchangeStyle != "native" && c.ExchangeStyle != "unified" {
		return c, errors.New("invalid EXCHANGE_STYLE: use native or unified")
	}
	c.LogFile = os.Getenv("LOG_FILE")
	if c.LogFile == "" {
		c.LogFile = defaultLogFile
	}
	c.AuthSecret = os.Getenv("API_AUTH_SECRET")
	c.AuthIssuer = os.Getenv("API_AUTH_ISSUER")
	if c.AuthIssuer == "" {
		c.AuthIssuer = defaultIssuer
	}
	return c, nil
}
