package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"yt-relay/internal/config"
	"yt-relay/internal/proxy"
)

func main() {
	// config.json is optional; a present but unreadable file is fatal
	cfg, err := config.Load("config.json")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := proxy.NewServer(cfg, log.Default())
	if err := server.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
