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

// PutEntry persists one journal entry row.
func (s *Store) PutEntry(ctx context.Context, record storage.EntryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("entry id is required")
	}
	if strings.TrimSpace(record.UserID) == "" {
		return fmt.Errorf("entry user id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
	INSERT INTO entries (id, user_id, content, label, model, companion_reply, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		record.ID,
		record.UserID,
		record.Content,
		record.Label,
		record.Model,
		record.CompanionReply,
		toMillis(record.CreatedAt),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("put entry: %w", err)
	}
	return nil
}

// GetEntry returns one entry scoped to its owner.
func (s *Store) GetEntry(ctx context.Context, userID string, entryID string) (storage.EntryRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.EntryRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.EntryRecord{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
	SELECT id, user_id, content, label, model, companion_reply, created_at
	FROM entries
	WHERE user_id = ? AND id = ?
	`, userID, entryID)
	record, err := scanEntry(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.EntryRecord{}, storage.ErrNotFound
		}
		return storage.EntryRecord{}, fmt.Errorf("get entry: %w", err)
	}
	return record, nil
}

// ListEntriesByUserBetween returns entries created in [start, end), oldest first.
func (s *Store) ListEntriesByUserBetween(ctx context.Context, userID string, start time.Time, end time.Time) ([]storage.EntryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
	SELECT id, user_id, content, label, model, companion_reply, created_at
	FROM entries
	WHERE user_id = ? AND created_at >= ? AND created_at < ?
	ORDER BY created_at ASC, id ASC
	`, userID, toMillis(start), toMillis(end))
	if err != nil {
		return nil, fmt.Errorf("list entries between: %w", err)
	}
	defer rows.Close()

	var records []storage.EntryRecord
	for rows.Next() {
		record, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries between: %w", err)
	}
	return records, nil
}

// ListEntriesByUser returns up to limit entries, newest first.
func (s *Store) ListEntriesByUser(ctx context.Context, userID string, limit int) ([]storage.EntryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
	SELECT id, user_id, content, label, model, companion_reply, created_at
	FROM entries
	WHERE user_id = ?
	ORDER BY created_at DESC, id DESC
	LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var records []storage.EntryRecord
	for rows.Next() {
		record, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return records, nil
}

// SetEntryCompanionReply records companion metadata for one entry.
func (s *Store) SetEntryCompanionReply(ctx context.Context, userID string, entryID string, label string, model string, reply string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(ctx, `
	UPDATE entries
	SET label = ?, model = ?, companion_reply = ?
	WHERE user_id = ? AND id = ?
	`, label, model, reply, userID, entryID)
	if err != nil {
		return fmt.Errorf("set companion reply: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set companion reply rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanEntry(scan func(dest ...any) error) (storage.EntryRecord, error) {
	var record storage.EntryRecord
	var createdAt int64
	if err := scan(
		&record.ID,
		&record.UserID,
		&record.Content,
		&record.Label,
		&record.Model,
		&record.CompanionReply,
		&createdAt,
	); err != nil {
		return storage.EntryRecord{}, err
	}
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}
