package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"futures-bot/internal/auth"
	"futures-bot/internal/config"
)

func main() {
	subject := flag.String("subject", "cli", "token subject (caller name)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.AuthSecret == "" {
		fmt.Fprintln(os.Stderr, "API_AUTH_SECRET is not set")
		os.Exit(1)
	}
	token, err := auth.NewService(cfg.AuthIssuer, []byte(cfg.AuthSecret)).SignToken(*subject, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Subject: %s\nExpires: %s\nToken: %s\n", *subject, time.Now().Add(*ttl).UTC().Format(time.RFC3339), token)
}
