package token

import (
	"bytes"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/lumidiary/lumidiary/internal/services/shared/httpauth"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Secret != "" {
		t.Fatalf("Secret = %q, want empty", cfg.Secret)
	}
	if cfg.UserID != "demo-user" {
		t.Fatalf("UserID = %q, want %q", cfg.UserID, "demo-user")
	}
	if cfg.TTL != 24*time.Hour {
		t.Fatalf("TTL = %v, want 24h", cfg.TTL)
	}
}

func TestParseConfigEnvSecretAndFlags(t *testing.T) {
	t.Parallel()

	lookup := func(key string) (string, bool) {
		if key == "LUMIDIARY_AUTH_SECRET" {
			return "env-secret", true
		}
		return "", false
	}

	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-user", "alice", "-ttl", "1h"}, lookup)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Secret != "env-secret" {
		t.Fatalf("Secret = %q, want %q", cfg.Secret, "env-secret")
	}
	if cfg.UserID != "alice" {
		t.Fatalf("UserID = %q, want %q", cfg.UserID, "alice")
	}
	if cfg.TTL != time.Hour {
		t.Fatalf("TTL = %v, want 1h", cfg.TTL)
	}
}

func TestRunMintsVerifiableToken(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg := Config{Secret: "test-secret", UserID: "alice", TTL: time.Hour}
	now := func() time.Time { return time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC) }
	if err := Run(cfg, out, now); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	minted := strings.TrimSpace(out.String())
	if minted == "" {
		t.Fatal("Run() wrote no token")
	}

	verifier, err := httpauth.NewVerifier([]byte("test-secret"))
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}
	userID, err := verifier.Verify(minted)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != "alice" {
		t.Fatalf("Verify() userID = %q, want %q", userID, "alice")
	}
}

func TestRunValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing secret", cfg: Config{UserID: "alice", TTL: time.Hour}},
		{name: "missing user", cfg: Config{Secret: "s", UserID: " ", TTL: time.Hour}},
		{name: "non-positive ttl", cfg: Config{Secret: "s", UserID: "alice"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := Run(tt.cfg, &bytes.Buffer{}, nil); err == nil {
				t.Fatal("Run() error = nil, want validation error")
			}
		})
	}
}

func TestRunRequiresOutput(t *testing.T) {
	t.Parallel()

	cfg := Config{Secret: "s", UserID: "alice", TTL: time.Hour}
	if err := Run(cfg, nil, nil); err == nil {
		t.Fatal("Run() error = nil, want output error")
	}
}
