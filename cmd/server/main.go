package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/holywrit/ideas/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	srv, err := NewServer(cfg)
	if err != nil {
		log.Fatal("server init failed: ", err)
	}

	srv.infra.Logger.Info(
		"ideas starting",
		"version", cfg.Version,
		"addr", cfg.Server.Addr(),
		"env", cfg.Env(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		srv.infra.Logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}

	srv.infra.Logger.Info("ideas stopped")
}
