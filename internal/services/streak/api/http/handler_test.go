package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lumidiary/lumidiary/internal/services/shared/httpauth"
	"github.com/lumidiary/lumidiary/internal/services/streak/domain"
	"github.com/lumidiary/lumidiary/internal/services/streak/storage"
)

type memoryStreakStore struct {
	mu   sync.Mutex
	rows map[string]storage.StreakRecord
}

func newMemoryStreakStore() *memoryStreakStore {
	return &memoryStreakStore{rows: map[string]storage.StreakRecord{}}
}

func (s *memoryStreakStore) GetStreak(_ context.Context, userID string) (storage.StreakRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.rows[userID]
	if !ok {
		return storage.StreakRecord{}, storage.ErrNotFound
	}
	return record, nil
}

func (s *memoryStreakStore) InsertStreak(_ context.Context, record storage.StreakRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[record.UserID]; ok {
		return storage.ErrConflict
	}
	s.rows[record.UserID] = record
	return nil
}

func (s *memoryStreakStore) UpdateStreakGuarded(_ context.Context, record storage.StreakRecord, prevCount int, prevLastDay time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.rows[record.UserID]
	if !ok || current.Count != prevCount || !current.LastDay.Equal(prevLastDay) {
		return storage.ErrConflict
	}
	s.rows[record.UserID] = record
	return nil
}

const testSecret = "streak-api-test-secret-streak-api!!"

func newTestServer(t *testing.T, store *memoryStreakStore, at time.Time) *httptest.Server {
	t.Helper()

	service := domain.NewService(store, func() time.Time { return at })
	mux := http.NewServeMux()
	NewHandler(service).Register(mux)

	verifier, err := httpauth.NewVerifier([]byte(testSecret))
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	server := httptest.NewServer(verifier.Middleware(mux))
	t.Cleanup(server.Close)
	return server
}

func authedRequest(t *testing.T, method, url, body string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	token, err := httpauth.Mint([]byte(testSecret), "user-1", time.Hour, nil)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestGetStreakAbsent(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	server := newTestServer(t, newMemoryStreakStore(), at)

	res, err := http.DefaultClient.Do(authedRequest(t, http.MethodGet, server.URL+"/smile-streak", ""))
	if err != nil {
		t.Fatalf("get streak: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}

	var body struct {
		SmileStreak   int     `json:"smileStreak"`
		LastSmileDate *string `json:"lastSmileDate"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.SmileStreak != 0 || body.LastSmileDate != nil {
		t.Fatalf("unexpected payload: %+v", body)
	}
}

func TestRecordSmileEndpoint(t *testing.T) {
	t.Parallel()

	feb10 := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	store := newMemoryStreakStore()
	store.rows["user-1"] = storage.StreakRecord{UserID: "user-1", Count: 4, LastDay: feb10}

	server := newTestServer(t, store, feb10.AddDate(0, 0, 1).Add(9*time.Hour))

	res, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, server.URL+"/smile-streak", `{"isSmiling":true}`))
	if err != nil {
		t.Fatalf("post smile: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}

	var body struct {
		SmileStreak   int     `json:"smileStreak"`
		LastSmileDate *string `json:"lastSmileDate"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.SmileStreak != 5 {
		t.Fatalf("smileStreak = %d, want 5", body.SmileStreak)
	}
	if body.LastSmileDate == nil || *body.LastSmileDate != "2026-02-11" {
		t.Fatalf("lastSmileDate = %v", body.LastSmileDate)
	}
}

func TestRecordSmileFalseSignalKeepsState(t *testing.T) {
	t.Parallel()

	feb10 := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	store := newMemoryStreakStore()
	store.rows["user-1"] = storage.StreakRecord{UserID: "user-1", Count: 4, LastDay: feb10}

	server := newTestServer(t, store, feb10.AddDate(0, 0, 4))

	res, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, server.URL+"/smile-streak", `{"isSmiling":false}`))
	if err != nil {
		t.Fatalf("post smile: %v", err)
	}
	defer res.Body.Close()

	var body struct {
		SmileStreak   int     `json:"smileStreak"`
		LastSmileDate *string `json:"lastSmileDate"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.SmileStreak != 4 {
		t.Fatalf("smileStreak = %d, want 4", body.SmileStreak)
	}
	if body.LastSmileDate == nil || *body.LastSmileDate != "2026-02-10" {
		t.Fatalf("lastSmileDate = %v", body.LastSmileDate)
	}
}

func TestRecordSmileRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	server := newTestServer(t, newMemoryStreakStore(), at)

	res, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, server.URL+"/smile-streak", "not json"))
	if err != nil {
		t.Fatalf("post smile: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", res.StatusCode)
	}
}

func TestStreakEndpointsRequireAuth(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	server := newTestServer(t, newMemoryStreakStore(), at)

	res, err := http.Get(server.URL + "/smile-streak")
	if err != nil {
		t.Fatalf("get streak: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", res.StatusCode)
	}
}
