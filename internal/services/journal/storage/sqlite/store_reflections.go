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

// PutReflection inserts one weekly reflection row. A duplicate
// (user_id, week_start) insert returns ErrConflict so callers can recover by
// re-reading the winner.
func (s *Store) PutReflection(ctx context.Context, record storage.ReflectionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.UserID) == "" {
		return fmt.Errorf("reflection user id is required")
	}

	themesJSON, err := encodeStrings(record.Themes)
	if err != nil {
		return err
	}
	growthJSON, err := encodeStrings(record.GrowthMoments)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
	INSERT INTO reflections (user_id, week_start, themes_json, growth_json, challenge, improvement, identity, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.UserID,
		toMillis(record.WeekStart),
		themesJSON,
		growthJSON,
		record.Challenge,
		record.Improvement,
		record.Identity,
		toMillis(record.CreatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("put reflection: %w", err)
	}
	return nil
}

// GetReflection returns the reflection for one user-week bucket.
func (s *Store) GetReflection(ctx context.Context, userID string, weekStart time.Time) (storage.ReflectionRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.ReflectionRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.ReflectionRecord{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
	SELECT user_id, week_start, themes_json, growth_json, challenge, improvement, identity, created_at
	FROM reflections
	WHERE user_id = ? AND week_start = ?
	`, userID, toMillis(weekStart))

	var record storage.ReflectionRecord
	var weekStartMillis int64
	var createdAt int64
	var themesJSON string
	var growthJSON string
	if err := row.Scan(
		&record.UserID,
		&weekStartMillis,
		&themesJSON,
		&growthJSON,
		&record.Challenge,
		&record.Improvement,
		&record.Identity,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ReflectionRecord{}, storage.ErrNotFound
		}
		return storage.ReflectionRecord{}, fmt.Errorf("get reflection: %w", err)
	}

	themes, err := decodeStrings(themesJSON)
	if err != nil {
		return storage.ReflectionRecord{}, err
	}
	growth, err := decodeStrings(growthJSON)
	if err != nil {
		return storage.ReflectionRecord{}, err
	}
	record.Themes = themes
	record.GrowthMoments = growth
	record.WeekStart = fromMillis(weekStartMillis)
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}
