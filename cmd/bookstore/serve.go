package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"bookstore/internal/config"
	"bookstore/internal/http/handlers"
	applog "bookstore/internal/log"
	"bookstore/internal/metrics"
	"bookstore/internal/repos"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	defer setupLogging(cfg)()
	ctx := cmd.Context()

	// Metrics first: the database handle picks up the global meter provider.
	m, provider, err := metrics.Init(ctx, cfg)
	if err != nil {
		applog.Error(nil, "metrics.init", err, nil)
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(sctx); err != nil {
			applog.Error(nil, "metrics.shutdown", err, nil)
		}
	}()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		applog.Error(nil, "db.open", err, map[string]any{"dsn": cfg.DBDSN})
		return err
	}
	defer db.Close()

	app := handlers.NewApp(cfg, handlers.NewDeps(db, cfg, m), m)

	errCh := make(chan error, 1)
	go func() { errCh <- app.Listen(":" + cfg.Port) }()
	applog.Info(nil, "server.start", map[string]any{"addr": ":" + cfg.Port})

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	select {
	case err := <-errCh:
		if err != nil {
			applog.Error(nil, "server.listen", err, nil)
		}
		return err
	case <-sigCtx.Done():
	}

	applog.Info(nil, "server.shutdown", nil)
	return app.ShutdownWithTimeout(10 * time.Second)
}
