package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Evgen-Mutagen/go-atm-network/internal/app"
	"github.com/Evgen-Mutagen/go-atm-network/internal/util/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := app.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		exitf("Invalid configuration: %v", err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogOutput); err != nil {
		exitf("Failed to init logger: %v", err)
	}

	application, err := app.New(cfg, logger.Log, time.Now)
	if err != nil {
		logger.Log.Error("Startup failed", zap.Error(err))
		_ = logger.Sync()
		exitf("Startup failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = application.Run(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.Error("Session failed", zap.Error(err))
		_ = logger.Sync()
		stop()
		exitf("Session failed: %v", err)
	}
	_ = logger.Sync()
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
