// Package domain implements the journal service core: entry capture,
// weekly reflection aggregation, and topic suggestions.
package domain

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	apperrors "github.com/lumidiary/lumidiary/internal/platform/errors"
	"github.com/lumidiary/lumidiary/internal/platform/id"
	"github.com/lumidiary/lumidiary/internal/services/journal/classify"
	"github.com/lumidiary/lumidiary/internal/services/journal/reflection"
	"github.com/lumidiary/lumidiary/internal/services/journal/storage"
	"github.com/lumidiary/lumidiary/internal/services/journal/synthesis"
	"github.com/lumidiary/lumidiary/internal/services/journal/week"
)

// ErrNoEntries reports that a reflection was requested for a week with no
// journal entries. No thread is created and no row is written.
var ErrNoEntries = apperrors.New(apperrors.CodeNotFound, "no journal entries for this week")

// defaultTopics are served when there are no recent entries to analyze or
// the suggestion collaborator is unavailable.
var defaultTopics = []string{
	"My current headspace",
	"Today's small wins",
	"My evening reflections",
}

const (
	topicWindowDays = 3
	maxTopics       = 3
)

// Classifier labels entries and suggests starters from recent entry text.
type Classifier interface {
	Classify(ctx context.Context, text string) (classify.Label, error)
	SuggestTopics(ctx context.Context, entriesText string) ([]string, error)
}

// ThreadProvider resolves the conversation thread for a user-week bucket.
type ThreadProvider interface {
	GetOrCreate(ctx context.Context, userID string, at time.Time) (string, error)
}

// Entry is a journal entry with its optional companion reply.
type Entry struct {
	ID             string
	UserID         string
	Content        string
	Label          classify.Label
	Model          string
	CompanionReply string
	CreatedAt      time.Time
}

// SaveEntryResult reports a persisted entry plus the outcome of the
// best-effort companion reply. CompanionErr never invalidates the entry.
type SaveEntryResult struct {
	Entry        Entry
	CompanionErr error
}

// ReflectionState reports how a weekly reflection request concluded.
type ReflectionState string

const (
	ReflectionExisting ReflectionState = "existing"
	ReflectionCreated  ReflectionState = "created"
)

// ReflectionResult is a weekly reflection together with its bucket and how
// it was obtained.
type ReflectionResult struct {
	WeekStart  time.Time
	Reflection reflection.WeeklyReflection
	State      ReflectionState
}

// Service coordinates stores and collaborators for the journal flows.
type Service struct {
	entries     storage.EntryStore
	reflections storage.ReflectionStore
	threads     ThreadProvider
	synthesis   synthesis.Client
	classifier  Classifier

	now   func() time.Time
	newID func() (string, error)
}

// Config carries Service dependencies. Clock and IDGenerator are optional
// and default to UTC wall time and random IDs.
type Config struct {
	Entries     storage.EntryStore
	Reflections storage.ReflectionStore
	Threads     ThreadProvider
	Synthesis   synthesis.Client
	Classifier  Classifier
	Clock       func() time.Time
	IDGenerator func() (string, error)
}

// NewService builds a journal Service.
func NewService(cfg Config) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	idGen := cfg.IDGenerator
	if idGen == nil {
		idGen = id.NewID
	}
	return &Service{
		entries:     cfg.Entries,
		reflections: cfg.Reflections,
		threads:     cfg.Threads,
		synthesis:   cfg.Synthesis,
		classifier:  cfg.Classifier,
		now:         clock,
		newID:       idGen,
	}
}

// SaveEntry persists a journal entry and then attempts the companion
// reply. The entry is durable before any collaborator is contacted; a
// classification or synthesis failure is reported in the result without
// rolling the entry back.
func (s *Service) SaveEntry(ctx context.Context, userID, content string) (SaveEntryResult, error) {
	userID = strings.TrimSpace(userID)
	content = strings.TrimSpace(content)
	if userID == "" {
		return SaveEntryResult{}, apperrors.New(apperrors.CodeEntryEmptyUserID, "user id is required")
	}
	if content == "" {
		return SaveEntryResult{}, apperrors.New(apperrors.CodeEntryEmptyContent, "entry content is required")
	}

	entryID, err := s.newID()
	if err != nil {
		return SaveEntryResult{}, apperrors.Wrap(apperrors.CodeUnknown, "generate entry id", err)
	}

	record := storage.EntryRecord{
		ID:        entryID,
		UserID:    userID,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.entries.PutEntry(ctx, record); err != nil {
		return SaveEntryResult{}, apperrors.Wrap(apperrors.CodeUnknown, "persist entry", err)
	}

	result := SaveEntryResult{Entry: Entry{
		ID:        record.ID,
		UserID:    record.UserID,
		Content:   record.Content,
		CreatedAt: record.CreatedAt,
	}}

	label, model, reply, err := s.companionReply(ctx, record)
	if err != nil {
		log.Printf("journal: companion reply for entry %s unavailable: %v", record.ID, err)
		result.CompanionErr = apperrors.Wrap(apperrors.CodeCollaboratorUnavailable, "companion reply unavailable", err)
		return result, nil
	}

	result.Entry.Label = label
	result.Entry.Model = model
	result.Entry.CompanionReply = reply
	return result, nil
}

func (s *Service) companionReply(ctx context.Context, record storage.EntryRecord) (classify.Label, string, string, error) {
	label, err := s.classifier.Classify(ctx, record.Content)
	if err != nil {
		return "", "", "", err
	}
	route := classify.RouteFor(label)

	handle, err := s.threads.GetOrCreate(ctx, record.UserID, record.CreatedAt)
	if err != nil {
		return "", "", "", err
	}

	reply, err := s.synthesis.AddMessage(ctx, handle, synthesis.DailyPrompt(label, record.Content), route)
	if err != nil {
		return "", "", "", err
	}

	if err := s.entries.SetEntryCompanionReply(ctx, record.UserID, record.ID, string(label), route.Model, reply); err != nil {
		return "", "", "", err
	}
	return label, route.Model, reply, nil
}

// ListEntries returns the user's most recent entries, newest first.
func (s *Service) ListEntries(ctx context.Context, userID string, limit int) ([]Entry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperrors.New(apperrors.CodeEntryEmptyUserID, "user id is required")
	}

	records, err := s.entries.ListEntriesByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnknown, "list entries", err)
	}

	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, Entry{
			ID:             record.ID,
			UserID:         record.UserID,
			Content:        record.Content,
			Label:          classify.Label(record.Label),
			Model:          record.Model,
			CompanionReply: record.CompanionReply,
			CreatedAt:      record.CreatedAt,
		})
	}
	return entries, nil
}

// WeeklyReflection returns the reflection for the week containing at,
// synthesizing and persisting it on first request. Requests for an empty
// week return ErrNoEntries. Exactly one reflection exists per user-week;
// an insert race resolves to the winner's row.
func (s *Service) WeeklyReflection(ctx context.Context, userID string, at time.Time) (ReflectionResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ReflectionResult{}, apperrors.New(apperrors.CodeEntryEmptyUserID, "user id is required")
	}

	weekStart := week.Start(at)
	if existing, err := s.reflections.GetReflection(ctx, userID, weekStart); err == nil {
		return ReflectionResult{
			WeekStart:  weekStart,
			Reflection: recordToReflection(existing),
			State:      ReflectionExisting,
		}, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return ReflectionResult{}, apperrors.Wrap(apperrors.CodeUnknown, "lookup reflection", err)
	}

	records, err := s.entries.ListEntriesByUserBetween(ctx, userID, weekStart, week.End(at))
	if err != nil {
		return ReflectionResult{}, apperrors.Wrap(apperrors.CodeUnknown, "list week entries", err)
	}
	if len(records) == 0 {
		return ReflectionResult{}, ErrNoEntries
	}

	handle, err := s.threads.GetOrCreate(ctx, userID, at)
	if err != nil {
		return ReflectionResult{}, apperrors.Wrap(apperrors.CodeThreadCreateFailed, "resolve week thread", err)
	}

	contents := make([]string, 0, len(records))
	for _, record := range records {
		contents = append(contents, record.Content)
	}
	raw, err := s.synthesis.AddMessage(ctx, handle, synthesis.WeeklyPrompt(contents), classify.WeeklyRoute())
	if err != nil {
		return ReflectionResult{}, apperrors.Wrap(apperrors.CodeReflectionUnavailable, "synthesize reflection", err)
	}

	parsed, err := reflection.Parse(raw)
	if err != nil {
		// Degraded but recoverable: persist the empty-field reflection
		// rather than failing the request.
		log.Printf("journal: reflection for user %s week %s unparsable, storing defaults: %v", userID, weekStart.Format("2006-01-02"), err)
		parsed = reflection.Empty()
	}

	record := storage.ReflectionRecord{
		UserID:        userID,
		WeekStart:     weekStart,
		Themes:        parsed.Themes,
		GrowthMoments: parsed.GrowthMoments,
		Challenge:     parsed.Challenge,
		Improvement:   parsed.Improvement,
		Identity:      parsed.Identity,
		CreatedAt:     s.now(),
	}
	err = s.reflections.PutReflection(ctx, record)
	if err == nil {
		return ReflectionResult{WeekStart: weekStart, Reflection: parsed, State: ReflectionCreated}, nil
	}
	if !errors.Is(err, storage.ErrConflict) {
		return ReflectionResult{}, apperrors.Wrap(apperrors.CodeUnknown, "persist reflection", err)
	}

	// Another request synthesized the same week first; serve its row.
	winner, err := s.reflections.GetReflection(ctx, userID, weekStart)
	if err != nil {
		return ReflectionResult{}, apperrors.Wrap(apperrors.CodeUnknown, "read winning reflection", err)
	}
	return ReflectionResult{
		WeekStart:  weekStart,
		Reflection: recordToReflection(winner),
		State:      ReflectionExisting,
	}, nil
}

// SuggestTopics returns up to three short entry starters derived from the
// last three days of entries. Defaults are served when the window is empty
// or the collaborator fails.
func (s *Service) SuggestTopics(ctx context.Context, userID string) ([]string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperrors.New(apperrors.CodeEntryEmptyUserID, "user id is required")
	}

	now := s.now()
	windowStart := week.DayStart(now).AddDate(0, 0, -(topicWindowDays - 1))
	records, err := s.entries.ListEntriesByUserBetween(ctx, userID, windowStart, week.DayEnd(now))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnknown, "list recent entries", err)
	}
	if len(records) == 0 {
		return append([]string(nil), defaultTopics...), nil
	}

	contents := make([]string, 0, len(records))
	for _, record := range records {
		contents = append(contents, record.Content)
	}
	topics, err := s.classifier.SuggestTopics(ctx, strings.Join(contents, "\n---\n"))
	if err != nil {
		log.Printf("journal: topic suggestions for user %s unavailable, serving defaults: %v", userID, err)
		return append([]string(nil), defaultTopics...), nil
	}
	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	return topics, nil
}

func recordToReflection(record storage.ReflectionRecord) reflection.WeeklyReflection {
	parsed := reflection.WeeklyReflection{
		Themes:        record.Themes,
		GrowthMoments: record.GrowthMoments,
		Challenge:     record.Challenge,
		Improvement:   record.Improvement,
		Identity:      record.Identity,
	}
	if parsed.Themes == nil {
		parsed.Themes = []string{}
	}
	if parsed.GrowthMoments == nil {
		parsed.GrowthMoments = []string{}
	}
	return parsed
}
