package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/janisto/greeter/internal/config"
	"github.com/janisto/greeter/internal/platform/logging"
	"github.com/janisto/greeter/internal/platform/server"
	"github.com/janisto/greeter/internal/routes"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	defer func() {
		if err := logging.Sync(); err != nil {
			logging.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := logging.Err(); err != nil {
		logging.LogError(context.Background(), "logger init error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logging.LogError(context.Background(), "server failed", err)
		_ = logging.Sync()
		os.Exit(1)
	}
}

// run loads configuration, binds the port and serves until ctx is done.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return err
	}

	srv := server.New(cfg.Addr(), routes.New(cfg, Version), server.Timeouts{
		Read:       cfg.Server.ReadTimeout,
		ReadHeader: cfg.Server.ReadHeaderTimeout,
		Write:      cfg.Server.WriteTimeout,
		Idle:       cfg.Server.IdleTimeout,
		Shutdown:   cfg.Server.ShutdownTimeout,
	})
	if err := srv.Listen(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	return srv.Serve(ctx)
}
