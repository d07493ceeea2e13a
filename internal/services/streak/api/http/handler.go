// Package http exposes the streak service over a JSON HTTP API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/lumidiary/lumidiary/internal/platform/errors"
	"github.com/lumidiary/lumidiary/internal/services/shared/httpauth"
	"github.com/lumidiary/lumidiary/internal/services/streak/domain"
)

var tracer = otel.Tracer("lumidiary/streak/api")

// Handler serves the streak HTTP API.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler over the streak service.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// Register wires the streak routes onto mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /smile-streak", h.getStreak)
	mux.HandleFunc("POST /smile-streak", h.recordSmile)
}

type streakPayload struct {
	SmileStreak   int     `json:"smileStreak"`
	LastSmileDate *string `json:"lastSmileDate"`
}

func stateToPayload(state domain.State) streakPayload {
	payload := streakPayload{SmileStreak: state.Count}
	if !state.LastDay.IsZero() {
		formatted := state.LastDay.UTC().Format("2006-01-02")
		payload.LastSmileDate = &formatted
	}
	return payload
}

func (h *Handler) getStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "streak.Get")
	defer span.End()

	userID, ok := httpauth.UserID(ctx)
	if !ok {
		writeError(w, apperrors.New(apperrors.CodeAuthMissingToken, "missing authenticated user"))
		return
	}

	state, err := h.service.Streak(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateToPayload(state))
}

func (h *Handler) recordSmile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "streak.RecordSmile")
	defer span.End()

	userID, ok := httpauth.UserID(ctx)
	if !ok {
		writeError(w, apperrors.New(apperrors.CodeAuthMissingToken, "missing authenticated user"))
		return
	}

	var body struct {
		IsSmiling bool `json:"isSmiling"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperrors.New(apperrors.CodeInvalidRequest, "request body must be JSON with an isSmiling field"))
		return
	}

	state, err := h.service.RecordSmile(ctx, userID, body.IsSmiling)
	if err != nil {
		writeError(w, err)
		return
	}
	span.SetAttributes(attribute.Int("streak.count", state.Count))
	writeJSON(w, http.StatusOK, stateToPayload(state))
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
