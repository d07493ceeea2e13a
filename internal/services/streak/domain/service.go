package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/lumidiary/lumidiary/internal/platform/errors"
	"github.com/lumidiary/lumidiary/internal/services/streak/storage"
)

const maxUpdateAttempts = 3

// Service reads and advances smile streaks against a durable store.
type Service struct {
	store storage.StreakStore
	now   func() time.Time
}

// NewService builds a streak Service. A nil clock defaults to UTC wall time.
func NewService(store storage.StreakStore, now func() time.Time) *Service {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{store: store, now: now}
}

// Streak returns the user's current streak, zero-valued when none exists.
func (s *Service) Streak(ctx context.Context, userID string) (State, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return State{}, apperrors.New(apperrors.CodeEntryEmptyUserID, "user id is required")
	}

	record, err := s.store.GetStreak(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return State{}, nil
	}
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.CodeUnknown, "read streak", err)
	}
	return State{Count: record.Count, LastDay: record.LastDay}, nil
}

// RecordSmile applies one smile signal and persists the advanced streak.
// The write is a compare-and-swap keyed on the previously read state, so
// concurrent same-day signals converge on a single increment. A lost race
// is retried against the fresh state a bounded number of times.
func (s *Service) RecordSmile(ctx context.Context, userID string, smiled bool) (State, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return State{}, apperrors.New(apperrors.CodeEntryEmptyUserID, "user id is required")
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		record, err := s.store.GetStreak(ctx, userID)
		missing := errors.Is(err, storage.ErrNotFound)
		if err != nil && !missing {
			return State{}, apperrors.Wrap(apperrors.CodeUnknown, "read streak", err)
		}

		prior := State{Count: record.Count, LastDay: record.LastDay}
		next := Advance(prior, smiled, s.now())
		if !smiled || (next.Count == prior.Count && next.LastDay.Equal(prior.LastDay)) {
			return prior, nil
		}

		updated := storage.StreakRecord{
			UserID:    userID,
			Count:     next.Count,
			LastDay:   next.LastDay,
			UpdatedAt: s.now(),
		}
		if missing {
			err = s.store.InsertStreak(ctx, updated)
		} else {
			err = s.store.UpdateStreakGuarded(ctx, updated, prior.Count, prior.LastDay)
		}
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, storage.ErrConflict) {
			return State{}, apperrors.Wrap(apperrors.CodeUnknown, "persist streak", err)
		}
		// Lost the race; re-read and re-apply.
	}
	return State{}, apperrors.New(apperrors.CodeStreakUpdateContention, "streak update contention")
}
