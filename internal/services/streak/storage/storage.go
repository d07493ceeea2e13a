// Package storage defines the streak persistence contracts.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates no streak row exists for the user.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a guarded write lost a race with another writer.
	ErrConflict = errors.New("record conflict")
)

// StreakRecord stores one user's smile streak.
type StreakRecord struct {
	UserID    string
	Count     int
	LastDay   time.Time
	UpdatedAt time.Time
}

// StreakStore persists streaks with compare-and-swap updates.
type StreakStore interface {
	GetStreak(ctx context.Context, userID string) (StreakRecord, error)
	// InsertStreak creates the first row for a user and returns ErrConflict
	// when one already exists.
	InsertStreak(ctx context.Context, record StreakRecord) error
	// UpdateStreakGuarded writes record only when the stored row still
	// carries prevCount and prevLastDay; otherwise it returns ErrConflict.
	UpdateStreakGuarded(ctx context.Context, record StreakRecord, prevCount int, prevLastDay time.Time) error
}
