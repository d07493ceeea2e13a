// Package token mints short-lived development tokens for the HTTP APIs.
package token

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lumidiary/lumidiary/internal/services/shared/httpauth"
)

// Config holds configuration for token minting.
type Config struct {
	Secret string
	UserID string
	TTL    time.Duration
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses environment defaults and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := Config{
		UserID: "demo-user",
		TTL:    24 * time.Hour,
	}
	if lookup != nil {
		if value, ok := lookup("LUMIDIARY_AUTH_SECRET"); ok {
			cfg.Secret = strings.TrimSpace(value)
		}
	}

	fs.StringVar(&cfg.Secret, "secret", cfg.Secret, "signing secret shared with the servers")
	fs.StringVar(&cfg.UserID, "user", cfg.UserID, "user id the token authenticates")
	fs.DurationVar(&cfg.TTL, "ttl", cfg.TTL, "how long the token stays valid")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run mints a token and writes it to out. A nil now uses the wall clock.
func Run(cfg Config, out io.Writer, now func() time.Time) error {
	if out == nil {
		return errors.New("output is required")
	}
	if strings.TrimSpace(cfg.Secret) == "" {
		return errors.New("signing secret is required")
	}
	if strings.TrimSpace(cfg.UserID) == "" {
		return errors.New("user id is required")
	}
	if cfg.TTL <= 0 {
		return errors.New("ttl must be greater than zero")
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	minted, err := httpauth.Mint([]byte(cfg.Secret), cfg.UserID, cfg.TTL, now)
	if err != nil {
		return fmt.Errorf("mint token: %w", err)
	}
	_, err = fmt.Fprintln(out, minted)
	return err
}
