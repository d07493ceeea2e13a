// Package httpauth provides the bearer-token boundary for Lumidiary HTTP APIs.
//
// Credential issuance lives outside these services; this package only verifies
// HS256 tokens minted by that collaborator and exposes the authenticated user
// ID to request handlers.
package httpauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/lumidiary/lumidiary/internal/platform/errors"
)

type contextKey struct{}

var userIDKey contextKey

// ErrSecretRequired indicates the verifier is missing key material.
var ErrSecretRequired = errors.New("auth secret is required")

// UserID returns the authenticated user ID stored on the request context.
func UserID(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(userIDKey).(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// WithUserID returns a context carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Verifier validates bearer tokens on inbound requests.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier creates a Verifier for the provided HS256 secret.
func NewVerifier(secret []byte) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrSecretRequired
	}
	return &Verifier{secret: secret, now: time.Now}, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// token subject as the request user ID.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeAuthError(w, apperrors.CodeAuthMissingToken, "missing bearer token")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		userID, err := v.Verify(token)
		if err != nil {
			writeAuthError(w, apperrors.CodeAuthInvalidToken, "invalid bearer token")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// Verify validates a raw token string and returns its subject.
func (v *Verifier) Verify(token string) (string, error) {
	if v == nil || len(v.secret) == 0 {
		return "", ErrSecretRequired
	}
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	}, jwt.WithTimeFunc(v.nowUTC), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || strings.TrimSpace(claims.Subject) == "" {
		return "", errors.New("token subject is required")
	}
	return claims.Subject, nil
}

// Mint signs a token for the given user. It backs local development tooling
// and tests; production tokens come from the external credential issuer.
func Mint(secret []byte, userID string, ttl time.Duration, now func() time.Time) (string, error) {
	if len(secret) == 0 {
		return "", ErrSecretRequired
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("user id is required")
	}
	if now == nil {
		now = time.Now
	}
	issuedAt := now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (v *Verifier) nowUTC() time.Time {
	if v.now == nil {
		return time.Now().UTC()
	}
	return v.now().UTC()
}

func writeAuthError(w http.ResponseWriter, code apperrors.Code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code.HTTPStatus())
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    string(code),
		"message": message,
	})
}
