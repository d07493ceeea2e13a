// Package server wires the streak runtime and HTTP lifecycle.
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
	"github.com/lumidiary/lumidiary/internal/services/shared/httpauth"
	streakhttp "github.com/lumidiary/lumidiary/internal/services/streak/api/http"
	"github.com/lumidiary/lumidiary/internal/services/streak/domain"
	streaksqlite "github.com/lumidiary/lumidiary/internal/services/streak/storage/sqlite"
)

type serverEnv struct {
	DBPath     string `env:"LUMIDIARY_STREAK_DB_PATH"`
	AuthSecret string `env:"LUMIDIARY_AUTH_SECRET"`
}

func loadServerEnv() serverEnv {
	var cfg serverEnv
	_ = config.ParseEnv(&cfg)
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "streak.db")
	}
	return cfg
}

// Server hosts the streak HTTP API and storage lifecycle.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      *streaksqlite.Store
}

// New creates a configured streak server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured streak server for the provided address.
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

	store, err := openStreakStore(env.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	service := domain.NewService(store, nil)
	mux := http.NewServeMux()
	streakhttp.NewHandler(service).Register(mux)

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

// Run creates and serves a streak server until the context ends.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the streak server and blocks until it stops or the context
// ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.closeStore()

	shutdownTracing, err := otel.Setup(ctx, "streak")
	if err != nil {
		log.Printf("tracing disabled: %v", err)
		shutdownTracing = func(context.Context) error { return nil }
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	log.Printf("streak server listening at %v", s.listener.Addr())
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
			log.Printf("close streak store: %v", err)
		}
	}
}

func openStreakStore(path string) (*streaksqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := streaksqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open streak sqlite store: %w", err)
	}
	return store, nil
}
