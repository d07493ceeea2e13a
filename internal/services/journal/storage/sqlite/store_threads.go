package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lumidiary/lumidiary/internal/services/journal/storage"
)

// PutThread inserts one week-thread mapping. The (user_id, week_start) unique
// constraint is the concurrency backstop: a losing writer gets ErrConflict.
func (s *Store) PutThread(ctx context.Context, record storage.ThreadRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.UserID) == "" {
		return fmt.Errorf("thread user id is required")
	}
	if strings.TrimSpace(record.ExternalHandle) == "" {
		return fmt.Errorf("thread external handle is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
	INSERT INTO threads (user_id, week_start, external_handle, created_at)
	VALUES (?, ?, ?, ?)
	`,
		record.UserID,
		toMillis(record.WeekStart),
		record.ExternalHandle,
		toMillis(record.CreatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("put thread: %w", err)
	}
	return nil
}

// GetThread returns the thread mapping for one user-week bucket.
func (s *Store) GetThread(ctx context.Context, userID string, weekStart time.Time) (storage.ThreadRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.ThreadRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ThreadRecord{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
	SELECT user_id, week_start, external_handle, created_at
	FROM threads
	WHERE user_id = ? AND week_start = ?
	`, userID, toMillis(weekStart))

	var record storage.ThreadRecord
	var weekStartMillis int64
	var createdAt int64
	if err := row.Scan(&record.UserID, &weekStartMillis, &record.ExternalHandle, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ThreadRecord{}, storage.ErrNotFound
		}
		return storage.ThreadRecord{}, fmt.Errorf("get thread: %w", err)
	}
	record.WeekStart = fromMillis(weekStartMillis)
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}
