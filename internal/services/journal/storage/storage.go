package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested journal record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a requested write conflicts with uniqueness constraints.
	ErrConflict = errors.New("record conflict")
)

// EntryRecord stores one journal entry.
//
// ID, UserID, Content and CreatedAt are immutable once written. The companion
// fields are populated at most once when the daily reply completes; a failed
// reply leaves them empty without invalidating the entry.
type EntryRecord struct {
	ID             string
	UserID         string
	Content        string
	Label          string
	Model          string
	CompanionReply string
	CreatedAt      time.Time
}

// ThreadRecord maps one user-week bucket to an external conversation handle.
type ThreadRecord struct {
	UserID         string
	WeekStart      time.Time
	ExternalHandle string
	CreatedAt      time.Time
}

// ReflectionRecord stores one synthesized weekly reflection.
type ReflectionRecord struct {
	UserID        string
	WeekStart     time.Time
	Themes        []string
	GrowthMoments []string
	Challenge     string
	Improvement   string
	Identity      string
	CreatedAt     time.Time
}

// EntryStore persists journal entries.
type EntryStore interface {
	PutEntry(ctx context.Context, record EntryRecord) error
	GetEntry(ctx context.Context, userID string, entryID string) (EntryRecord, error)
	// ListEntriesByUserBetween returns entries with CreatedAt in [start, end),
	// oldest first.
	ListEntriesByUserBetween(ctx context.Context, userID string, start time.Time, end time.Time) ([]EntryRecord, error)
	// ListEntriesByUser returns up to limit entries, newest first.
	ListEntriesByUser(ctx context.Context, userID string, limit int) ([]EntryRecord, error)
	// SetEntryCompanionReply records the companion label, model and reply for
	// one entry without touching its immutable fields.
	SetEntryCompanionReply(ctx context.Context, userID string, entryID string, label string, model string, reply string) error
}

// ThreadStore persists week-thread mappings. Rows are add-only.
type ThreadStore interface {
	// PutThread inserts a thread mapping and returns ErrConflict when a row
	// already exists for (UserID, WeekStart.)
	PutThread(ctx context.Context, record ThreadRecord) error
	GetThread(ctx context.Context, userID string, weekStart time.Time) (ThreadRecord, error)
}

// ReflectionStore persists weekly reflections. Rows are immutable once created.
type ReflectionStore interface {
	// PutReflection inserts a reflection and returns ErrConflict when a row
	// already exists for (UserID, WeekStart).
	PutReflection(ctx context.Context, record ReflectionRecord) error
	GetReflection(ctx context.Context, userID string, weekStart time.Time) (ReflectionRecord, error)
}
