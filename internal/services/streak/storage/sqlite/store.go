// Package sqlite provides a SQLite-backed streak storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/lumidiary/lumidiary/internal/platform/storage/sqlitemigrate"
	"github.com/lumidiary/lumidiary/internal/services/streak/storage"
	"github.com/lumidiary/lumidiary/internal/services/streak/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists smile streaks in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a streak SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetStreak returns the streak row for a user.
func (s *Store) GetStreak(ctx context.Context, userID string) (storage.StreakRecord, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return storage.StreakRecord{}, fmt.Errorf("user id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT user_id, streak_count, last_smile_day, updated_at FROM smile_streaks WHERE user_id = ?`,
		userID)

	var record storage.StreakRecord
	var lastDay, updatedAt int64
	err := row.Scan(&record.UserID, &record.Count, &lastDay, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.StreakRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.StreakRecord{}, fmt.Errorf("scan streak: %w", err)
	}
	record.LastDay = fromMillis(lastDay)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

// InsertStreak creates the first streak row for a user.
func (s *Store) InsertStreak(ctx context.Context, record storage.StreakRecord) error {
	if strings.TrimSpace(record.UserID) == "" {
		return fmt.Errorf("user id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO smile_streaks (user_id, streak_count, last_smile_day, updated_at) VALUES (?, ?, ?, ?)`,
		record.UserID, record.Count, toMillis(record.LastDay), toMillis(record.UpdatedAt))
	if err != nil {
		if isUniqueConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("insert streak: %w", err)
	}
	return nil
}

// UpdateStreakGuarded writes record only when the stored row still matches
// the previously read count and day.
func (s *Store) UpdateStreakGuarded(ctx context.Context, record storage.StreakRecord, prevCount int, prevLastDay time.Time) error {
	if strings.TrimSpace(record.UserID) == "" {
		return fmt.Errorf("user id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx,
		`UPDATE smile_streaks SET streak_count = ?, last_smile_day = ?, updated_at = ?
		 WHERE user_id = ? AND streak_count = ? AND last_smile_day = ?`,
		record.Count, toMillis(record.LastDay), toMillis(record.UpdatedAt),
		record.UserID, prevCount, toMillis(prevLastDay))
	if err != nil {
		return fmt.Errorf("update streak: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update streak rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrConflict
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.StreakStore = (*Store)(nil)
