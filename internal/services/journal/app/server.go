// Package server wires the journal runtime and HTTP lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lumidiary/lumidiary/internal/platform/config"
	"github.com/lumidiary/lumidiary/internal/platform/otel"
	journalhttp "github.com/lumidiary/lumidiary/internal/services/journal/api/http"
	"github.com/lumidiary/lumidiary/internal/services/journal/classify"
	"github.com/lumidiary/lumidiary/internal/services/journal/domain"
	journalsqlite "github.com/lumidiary/lumidiary/internal/services/journal/storage/sqlite"
	"github.com/lumidiary/lumidiary/internal/services/journal/synthesis"
	"github.com/lumidiary/lumidiary/internal/services/journal/thread"
	"github.com/lumidiary/lumidiary/internal/services/shared/httpauth"
)

type serverEnv struct {
	DBPath               string `env:"LUMIDIARY_JOURNAL_DB_PATH"`
	AuthSecret           string `env:"LUMIDIARY_AUTH_SECRET"`
	SynthesisURL         string `env:"LUMIDIARY_SYNTHESIS_URL"`
	SynthesisAPIKey      string `env:"LUMIDIARY_SYNTHESIS_API_KEY"`
	SynthesisAssistantID string `env:"LUMIDIARY_SYNTHESIS_ASSISTANT_ID"`
	ClassifierURL        string `env:"LUMIDIARY_CLASSIFIER_URL"`
	ClassifierAPIKey     string `env:"LUMIDIARY_CLASSIFIER_API_KEY"`
	ClassifierModel      string `env:"LUMIDIARY_CLASSIFIER_MODEL"`
}

func loadServerEnv() serverEnv {
	var cfg serverEnv
	_ = config.ParseEnv(&cfg)
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "journal.db")
	}
	return cfg
}

// Server hosts the journal HTTP API and storage lifecycle.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      *journalsqlite.Store
}

// New creates a configured journal server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured journal server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	env := loadServerEnv()
	if strings.TrimSpace(env.AuthSecret) == "" {
		return nil, fmt.Errorf("LUMIDIARY_AUTH_SECRET is required")
	}
	verifier, err := httpauth.NewVerifier([]byte(env.AuthSecret))
	if err != nil {
		return nil, fmt.Errorf("configure auth verifier: %w", err)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	store, err := openJournalStore(env.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	synthesisClient := synthesis.NewHTTPClient(synthesis.HTTPConfig{
		BaseURL:     env.SynthesisURL,
		APIKey:      env.SynthesisAPIKey,
		AssistantID: env.SynthesisAssistantID,
	})
	classifier := classify.NewClassifier(classify.NewGeminiAdapter(classify.GeminiConfig{
		BaseURL: env.ClassifierURL,
		APIKey:  env.ClassifierAPIKey,
		Model:   env.ClassifierModel,
	}))
	registry := thread.NewRegistry(store, synthesisClient, nil)
	service := domain.NewService(domain.Config{
		Entries:     store,
		Reflections: store,
		Threads:     registry,
		Synthesis:   synthesisClient,
		Classifier:  classifier,
	})

	mux := http.NewServeMux()
	journalhttp.NewHandler(service).Register(mux)

	return &Server{
		listener:   listener,
		httpServer: &http.Server{Handler: verifier.Middleware(mux)},
		store:      store,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a journal server until the context ends.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the journal server and blocks until it stops or the context
// ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.closeStore()

	shutdownTracing, err := otel.Setup(ctx, "journal")
	if err != nil {
		log.Printf("tracing disabled: %v", err)
		shutdownTracing = func(context.Context) error { return nil }
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	log.Printf("journal server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
		err := <-serveErr
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	}
}

func (s *Server) closeStore() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close journal store: %v", err)
		}
	}
}

func openJournalStore(path string) (*journalsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := journalsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal sqlite store: %w", err)
	}
	return store, nil
}
