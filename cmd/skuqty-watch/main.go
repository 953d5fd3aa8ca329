package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"skuqty/internal/app"
	"skuqty/internal/config"
	"skuqty/internal/listener"
	"skuqty/internal/logging"
)

func main() {
	cfg, err := config.Load()
	must(err)

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	must(err)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.Open(ctx, cfg, logger)
	must(err)
	defer a.Close()

	logger.Info("watching inbox", zap.String("dir", cfg.InboxDir), zap.Duration("interval", cfg.WatchInterval()))
	svc := listener.NewService(a.Processing, cfg, logger)
	must(svc.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
