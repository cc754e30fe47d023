package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ykvlv/lesson-reminder/internal/app"
	"github.com/ykvlv/lesson-reminder/internal/config"
	"github.com/ykvlv/lesson-reminder/internal/logger"
)

// Exit codes: 2 for configuration problems, 1 for startup or runtime failures.
const (
	exitConfig  = 2
	exitFailure = 1
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return exitConfig
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
		return exitConfig
	}
	defer func() { _ = log.Sync() }()

	reminder, err := app.New(cfg, log)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return exitFailure
	}
	if err := reminder.Run(ctx); err != nil {
		log.Error("run failed", zap.Error(err))
		return exitFailure
	}
	return 0
}
