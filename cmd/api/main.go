package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"futures-bot/internal/auth"
	"futures-bot/internal/binance"
	"futures-bot/internal/config"
	"futures-bot/internal/exchange"
	"futures-bot/internal/httpserver"
	"futures-bot/internal/logging"
	"futures-bot/internal/orders"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	closer, err := logging.Setup(cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	integ, err := exchange.ByName(cfg.ExchangeStyle)
	if err != nil {
		log.Fatal(err)
	}
	// The client handle is created lazily on the first exchange call and
	// reused across requests; routes that never touch the exchange keep
	// working when credentials are absent.
	client := binance.NewLazy(func() (*binance.Client, error) {
		return binance.New(cfg.APIKey, cfg.APISecret, cfg.FAPIBaseURL, integ)
	})
	svc := orders.NewService(client, integ)

	var authSvc *auth.Service
	if cfg.AuthSecret != "" {
		authSvc = auth.NewService(cfg.AuthIssuer, []byte(cfg.AuthSecret))
	}
	router := httpserver.NewRouter(httpserver.RouterDeps{
		Handler:     httpserver.NewHandler(svc, cfg.LogFile),
		WSHandler:   httpserver.NewLogWS(cfg.LogFile),
		AuthService: authSvc,
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	slog.Info("server listening", "addr", cfg.HTTPAddr, "style", integ.Name(), "auth", authSvc != nil)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
