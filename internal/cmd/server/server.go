// Package server parses server command flags and launches the HTTP API.
package server

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	httpapi "github.com/louisbranch/demesne/internal/api/http"
	entrypoint "github.com/louisbranch/demesne/internal/platform/cmd"
	"github.com/louisbranch/demesne/internal/storage/sqlite"
)

// Config holds server command configuration.
type Config struct {
	Addr          string `env:"DEMESNE_ADDR"           envDefault:":8080"`
	DBPath        string `env:"DEMESNE_DB_PATH"        envDefault:"demesne.db"`
	SessionSecret string `env:"DEMESNE_SESSION_SECRET"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the HTTP API service.
func Run(ctx context.Context, cfg Config) error {
	if cfg.SessionSecret == "" {
		return fmt.Errorf("DEMESNE_SESSION_SECRET is required")
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceServer, func(ctx context.Context) error {
		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()
		logger.Info("connected to sqlite", "path", cfg.DBPath)

		srv := httpapi.New(cfg.Addr, logger, store, []byte(cfg.SessionSecret))

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("starting http server", "addr", cfg.Addr)
			return srv.Run(gctx)
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down http server")
			return srv.Shutdown(context.Background())
		})
		return g.Wait()
	})
}
