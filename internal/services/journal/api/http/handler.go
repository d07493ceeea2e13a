// Package http exposes the journal service over a JSON HTTP API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/lumidiary/lumidiary/internal/platform/errors"
	"github.com/lumidiary/lumidiary/internal/services/journal/domain"
	"github.com/lumidiary/lumidiary/internal/services/shared/httpauth"
)

const defaultListLimit = 50

var tracer = otel.Tracer("lumidiary/journal/api")

// Handler serves the journal HTTP API.
type Handler struct {
	service *domain.Service
	now     func() time.Time
}

// NewHandler builds a Handler over the journal service.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service, now: func() time.Time { return time.Now().UTC() }}
}

// Register wires the journal routes onto mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /entries", h.saveEntry)
	mux.HandleFunc("GET /entries", h.listEntries)
	mux.HandleFunc("GET /weekly-reflection", h.weeklyReflection)
	mux.HandleFunc("GET /suggested-topics", h.suggestedTopics)
}

type entryPayload struct {
	ID             string `json:"id"`
	Content        string `json:"content"`
	Label          string `json:"label,omitempty"`
	Model          string `json:"model,omitempty"`
	CompanionReply string `json:"aiResponse,omitempty"`
	CreatedAt      string `json:"createdAt"`
}

func entryToPayload(entry domain.Entry) entryPayload {
	return entryPayload{
		ID:             entry.ID,
		Content:        entry.Content,
		Label:          string(entry.Label),
		Model:          entry.Model,
		CompanionReply: entry.CompanionReply,
		CreatedAt:      entry.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) saveEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "journal.SaveEntry")
	defer span.End()

	userID, ok := httpauth.UserID(ctx)
	if !ok {
		writeError(w, apperrors.New(apperrors.CodeAuthMissingToken, "missing authenticated user"))
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperrors.New(apperrors.CodeInvalidRequest, "request body must be JSON with a content field"))
		return
	}

	result, err := h.service.SaveEntry(ctx, userID, body.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	span.SetAttributes(attribute.String("journal.entry_id", result.Entry.ID))

	response := struct {
		Entry            entryPayload `json:"entry"`
		CompanionPending bool         `json:"companionPending"`
	}{
		Entry:            entryToPayload(result.Entry),
		CompanionPending: result.CompanionErr != nil,
	}
	writeJSON(w, http.StatusCreated, response)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "journal.ListEntries")
	defer span.End()

	userID, ok := httpauth.UserID(ctx)
	if !ok {
		writeError(w, apperrors.New(apperrors.CodeAuthMissingToken, "missing authenticated user"))
		return
	}

	limit := defaultListLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, apperrors.New(apperrors.CodeInvalidRequest, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.service.ListEntries(ctx, userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	payload := make([]entryPayload, 0, len(entries))
	for _, entry := range entries {
		payload = append(payload, entryToPayload(entry))
	}
	writeJSON(w, http.StatusOK, struct {
		Entries []entryPayload `json:"entries"`
	}{Entries: payload})
}

func (h *Handler) weeklyReflection(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "journal.WeeklyReflection")
	defer span.End()

	userID, ok := httpauth.UserID(ctx)
	if !ok {
		writeError(w, apperrors.New(apperrors.CodeAuthMissingToken, "missing authenticated user"))
		return
	}

	result, err := h.service.WeeklyReflection(ctx, userID, h.now())
	if err != nil {
		writeError(w, err)
		return
	}
	span.SetAttributes(attribute.String("journal.reflection_state", string(result.State)))

	response := struct {
		WeekStart     string   `json:"weekStart"`
		Themes        []string `json:"themes"`
		GrowthMoments []string `json:"growthMoments"`
		Challenge     string   `json:"challenge"`
		Improvement   string   `json:"improvement"`
		Identity      string   `json:"identity"`
	}{
		WeekStart:     result.WeekStart.Format("2006-01-02"),
		Themes:        result.Reflection.Themes,
		GrowthMoments: result.Reflection.GrowthMoments,
		Challenge:     result.Reflection.Challenge,
		Improvement:   result.Reflection.Improvement,
		Identity:      result.Reflection.Identity,
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) suggestedTopics(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "journal.SuggestedTopics")
	defer span.End()

	userID, ok := httpauth.UserID(ctx)
	if !ok {
		writeError(w, apperrors.New(apperrors.CodeAuthMissingToken, "missing authenticated user"))
		return
	}

	topics, err := h.service.SuggestTopics(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Topics []string `json:"topics"`
	}{Topics: topics})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.CodeUnknown
	message := "internal error"
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		code = domainErr.Code
		message = domainErr.Message
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code.HTTPStatus())
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    string(code),
		"message": message,
	})
}
