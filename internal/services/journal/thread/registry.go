// Package thread maps users and weeks to collaborator conversation threads.
package thread

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lumidiary/lumidiary/internal/services/journal/storage"
	"github.com/lumidiary/lumidiary/internal/services/journal/synthesis"
	"github.com/lumidiary/lumidiary/internal/services/journal/week"
)

// Registry hands out exactly one collaborator thread per user per week.
type Registry struct {
	store  storage.ThreadStore
	client synthesis.Client
	now    func() time.Time
}

// NewRegistry builds a Registry. A nil clock defaults to UTC wall time.
func NewRegistry(store storage.ThreadStore, client synthesis.Client, now func() time.Time) *Registry {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Registry{store: store, client: client, now: now}
}

// GetOrCreate returns the thread handle for the week containing at,
// creating a collaborator thread on first use. Concurrent callers for the
// same week converge on a single handle: the insert loser re-reads the
// winner's record. Nothing is persisted when thread creation fails.
func (r *Registry) GetOrCreate(ctx context.Context, userID string, at time.Time) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}

	weekStart := week.Start(at)
	existing, err := r.store.GetThread(ctx, userID, weekStart)
	if err == nil {
		return existing.ExternalHandle, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("lookup thread: %w", err)
	}

	handle, err := r.client.CreateThread(ctx)
	if err != nil {
		return "", fmt.Errorf("create collaborator thread: %w", err)
	}

	record := storage.ThreadRecord{
		UserID:         userID,
		WeekStart:      weekStart,
		ExternalHandle: handle,
		CreatedAt:      r.now(),
	}
	err = r.store.PutThread(ctx, record)
	if err == nil {
		return handle, nil
	}
	if !errors.Is(err, storage.ErrConflict) {
		return "", fmt.Errorf("persist thread: %w", err)
	}

	// Another caller registered the week first; use their thread.
	winner, err := r.store.GetThread(ctx, userID, weekStart)
	if err != nil {
		return "", fmt.Errorf("read winning thread: %w", err)
	}
	return winner.ExternalHandle, nil
}
