// Package seed loads demo journal entries into a local journal database.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumidiary/lumidiary/internal/services/journal/storage"
	"github.com/lumidiary/lumidiary/internal/services/journal/storage/sqlite"
)

// Config holds configuration for seeding demo entries.
type Config struct {
	DBPath string
	UserID string
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses environment defaults and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := Config{
		DBPath: "data/journal.db",
		UserID: "demo-user",
	}
	if lookup != nil {
		if value, ok := lookup("LUMIDIARY_JOURNAL_DB_PATH"); ok && strings.TrimSpace(value) != "" {
			cfg.DBPath = strings.TrimSpace(value)
		}
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the journal SQLite database")
	fs.StringVar(&cfg.UserID, "user", cfg.UserID, "user id that owns the demo entries")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// entryWriter is the slice of the journal store the seeder needs.
type entryWriter interface {
	PutEntry(ctx context.Context, record storage.EntryRecord) error
	SetEntryCompanionReply(ctx context.Context, userID string, entryID string, label string, model string, reply string) error
}

// Run writes the demo entries through store. A nil store opens the SQLite
// database at cfg.DBPath. Entries already present are left untouched, so
// running the seeder twice is safe.
func Run(ctx context.Context, cfg Config, out io.Writer, store entryWriter) error {
	if out == nil {
		return errors.New("output is required")
	}
	userID := strings.TrimSpace(cfg.UserID)
	if userID == "" {
		return errors.New("user id is required")
	}
	if store == nil {
		if strings.TrimSpace(cfg.DBPath) == "" {
			return errors.New("database path is required")
		}
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create database directory: %w", err)
			}
		}
		sqlStore, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open journal store: %w", err)
		}
		defer func() {
			_ = sqlStore.Close()
		}()
		store = sqlStore
	}

	seeded := 0
	skipped := 0
	for _, entry := range demoEntries {
		record := storage.EntryRecord{
			ID:        entry.id,
			UserID:    userID,
			Content:   entry.content,
			CreatedAt: entry.createdAt,
		}
		if err := store.PutEntry(ctx, record); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				skipped++
				continue
			}
			return fmt.Errorf("seed entry %s: %w", entry.id, err)
		}
		if err := store.SetEntryCompanionReply(ctx, userID, entry.id, entry.label, entry.model, entry.reply); err != nil {
			return fmt.Errorf("seed companion reply %s: %w", entry.id, err)
		}
		seeded++
	}

	_, err := fmt.Fprintf(out, "seeded %d entries for %s (%d already present)\n", seeded, userID, skipped)
	return err
}
