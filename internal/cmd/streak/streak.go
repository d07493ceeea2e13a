// Package streak wires flags and environment into the streak server.
package streak

import (
	"context"
	"flag"
	"strconv"
	"strings"

	server "github.com/lumidiary/lumidiary/internal/services/streak/app"
)

// Config holds streak command configuration.
type Config struct {
	Port int
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses environment defaults and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := Config{
		Port: envPortOrDefault(lookup, "LUMIDIARY_STREAK_PORT", 8081),
	}

	fs.IntVar(&cfg.Port, "port", cfg.Port, "The streak HTTP server port")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the streak server.
func Run(ctx context.Context, cfg Config) error {
	return server.Run(ctx, cfg.Port)
}

func envPortOrDefault(lookup EnvLookup, key string, fallback int) int {
	if lookup == nil {
		return fallback
	}
	value, ok := lookup(key)
	if !ok {
		return fallback
	}
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || port <= 0 {
		return fallback
	}
	return port
}
