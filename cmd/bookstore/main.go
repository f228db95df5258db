package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bookstore/internal/config"
	applog "bookstore/internal/log"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "bookstore",
		Short:        "Bookstore catalog, wishlist, cart and account API",
		SilenceUsage: true,
		// Without a subcommand the server runs.
		RunE: runServe,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd(), newUserAddCmd())
	return root
}

// setupLogging applies LOG_LEVEL and tees the log into LOG_FILE when set.
func setupLogging(cfg config.Config) func() {
	applog.SetLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		return func() {}
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		applog.Error(nil, "log.file.open", err, map[string]any{"path": cfg.LogFile})
		return func() {}
	}
	applog.SetOutput(io.MultiWriter(os.Stdout, f))
	return func() {
		applog.SetOutput(os.Stdout)
		_ = f.Close()
	}
}
