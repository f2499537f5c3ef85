package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"ZhihuClipper/internal/app"
	"ZhihuClipper/internal/config"
	"ZhihuClipper/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	application := app.New(cfg, logger)

	if err := application.Run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, app.ErrUsage) {
			os.Exit(2)
		}
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
