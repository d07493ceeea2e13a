package seed

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lumidiary/lumidiary/internal/services/journal/storage"
	"github.com/lumidiary/lumidiary/internal/services/journal/storage/sqlite"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.DBPath != "data/journal.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "data/journal.db")
	}
	if cfg.UserID != "demo-user" {
		t.Fatalf("UserID = %q, want %q", cfg.UserID, "demo-user")
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Parallel()

	lookup := func(key string) (string, bool) {
		if key == "LUMIDIARY_JOURNAL_DB_PATH" {
			return "/tmp/env.db", true
		}
		return "", false
	}

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-user", "alice"}, lookup)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "/tmp/env.db")
	}
	if cfg.UserID != "alice" {
		t.Fatalf("UserID = %q, want %q", cfg.UserID, "alice")
	}
}

func TestRunRequiresUserID(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{UserID: "  "}, &bytes.Buffer{}, &fakeWriter{})
	if err == nil {
		t.Fatal("Run() error = nil, want user id error")
	}
}

func TestRunRequiresOutput(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{UserID: "alice"}, nil, &fakeWriter{})
	if err == nil {
		t.Fatal("Run() error = nil, want output error")
	}
}

func TestRunWritesEveryDemoEntry(t *testing.T) {
	t.Parallel()

	writer := &fakeWriter{entries: map[string]storage.EntryRecord{}}
	out := &bytes.Buffer{}
	if err := Run(context.Background(), Config{UserID: "alice"}, out, writer); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := len(writer.entries); got != len(demoEntries) {
		t.Fatalf("seeded %d entries, want %d", got, len(demoEntries))
	}
	for _, entry := range demoEntries {
		record, ok := writer.entries[entry.id]
		if !ok {
			t.Fatalf("entry %s missing", entry.id)
		}
		if record.UserID != "alice" {
			t.Fatalf("entry %s UserID = %q, want %q", entry.id, record.UserID, "alice")
		}
		if record.Label != entry.label || record.Model != entry.model {
			t.Fatalf("entry %s routed as (%q, %q), want (%q, %q)", entry.id, record.Label, record.Model, entry.label, entry.model)
		}
		if record.CompanionReply == "" {
			t.Fatalf("entry %s has no companion reply", entry.id)
		}
	}
	if !strings.Contains(out.String(), "seeded 8 entries for alice") {
		t.Fatalf("summary = %q, want seeded count", out.String())
	}
}

func TestRunIsIdempotentAgainstSQLite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.db")
	cfg := Config{DBPath: path, UserID: "alice"}

	if err := Run(context.Background(), cfg, &bytes.Buffer{}, nil); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	out := &bytes.Buffer{}
	if err := Run(context.Background(), cfg, out, nil); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "seeded 0 entries for alice (8 already present)") {
		t.Fatalf("summary = %q, want all entries skipped", out.String())
	}

	store, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})

	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	entries, err := store.ListEntriesByUserBetween(context.Background(), "alice", start, end)
	if err != nil {
		t.Fatalf("ListEntriesByUserBetween() error = %v", err)
	}
	if len(entries) != len(demoEntries) {
		t.Fatalf("stored %d entries, want %d", len(entries), len(demoEntries))
	}
}

type fakeWriter struct {
	entries map[string]storage.EntryRecord
}

func (f *fakeWriter) PutEntry(_ context.Context, record storage.EntryRecord) error {
	if f.entries == nil {
		f.entries = map[string]storage.EntryRecord{}
	}
	if _, ok := f.entries[record.ID]; ok {
		return storage.ErrConflict
	}
	f.entries[record.ID] = record
	return nil
}

func (f *fakeWriter) SetEntryCompanionReply(_ context.Context, userID string, entryID string, label string, model string, reply string) error {
	record, ok := f.entries[entryID]
	if !ok || record.UserID != userID {
		return storage.ErrNotFound
	}
	record.Label = label
	record.Model = model
	record.CompanionReply = reply
	f.entries[entryID] = record
	return nil
}
