package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/loredex/loredex/internal/catalog"
	"github.com/loredex/loredex/internal/config"
	"github.com/loredex/loredex/internal/logging"
	"github.com/loredex/loredex/internal/persist"
	"github.com/loredex/loredex/internal/pipeline"
	"github.com/loredex/loredex/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"store_backend", cfg.Store.Backend,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	kv, err := openKV(ctx, cfg)
	if err != nil {
		slog.Error("failed to open durable store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	store := catalog.NewStore()
	adapter := persist.NewAdapter(kv, cfg.Store.StateKey)

	restored, err := adapter.Restore(ctx, store)
	if err != nil {
		slog.Error("failed to read persisted state", "error", err)
		os.Exit(1)
	}

	p := pipeline.New(store, adapter, cfg.Import.MaxFileSize)

	if restored {
		slog.Info("state restored", "records", store.Len(), "batches", len(store.Batches()))
	} else {
		// Fresh start: load the default source. Failure here just means
		// an empty catalog until the user uploads something.
		bootCfg := pipeline.BootstrapConfig{
			URL:       cfg.Import.BootstrapURL,
			Path:      cfg.Import.BootstrapPath,
			Delimiter: config.Delimiter(cfg.Import.BootstrapDelimiter),
		}
		if err := p.Bootstrap(ctx, bootCfg); err != nil {
			slog.Warn("bootstrap source unavailable, starting empty", "error", err)
		}
	}

	server := web.NewServer(p, cfg)

	// Graceful shutdown: drain the server, then write the final state
	// snapshot before the process exits.
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}

		if err := p.Flush(shutdownCtx); err != nil {
			slog.Error("final state save failed", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}

// openKV selects the durable backend from config.
func openKV(ctx context.Context, cfg *config.Config) (persist.KV, error) {
	switch strings.ToLower(cfg.Store.Backend) {
	case "postgres":
		return persist.OpenPostgres(ctx, cfg.Store.PostgresURL)
	case "memory":
		return persist.NewMemoryKV(), nil
	default:
		return persist.OpenSQLite(cfg.Store.SQLitePath)
	}
}
