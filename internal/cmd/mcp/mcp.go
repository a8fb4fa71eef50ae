// Package mcp parses MCP command flags and serves the tool set on stdio.
package mcp

import (
	"context"
	"flag"
	"fmt"

	mcpservice "github.com/louisbranch/demesne/internal/mcp/service"
	entrypoint "github.com/louisbranch/demesne/internal/platform/cmd"
	"github.com/louisbranch/demesne/internal/storage/sqlite"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath string `env:"DEMESNE_DB_PATH" envDefault:"demesne.db"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter on stdio.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		return mcpservice.New(store).Serve(ctx)
	})
}
