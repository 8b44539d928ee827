// Package apihttp exposes the bot's operational surface: a health endpoint
// for probes and the Prometheus scrape target. It serves operators, not
// Telegram users.
package apihttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// UserCounter reports the number of registered users.
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

// DeletionQueue reports how many result deletions are still pending.
type DeletionQueue interface {
	Pending() int
}

type Server struct {
	users   UserCounter
	cleaner DeletionQueue
	logger  *slog.Logger
	handler http.Handler
	started time.Time
}

type ServerOption func(*Server)

func WithUserCounter(users UserCounter) ServerOption {
	return func(s *Server) {
		s.users = users
	}
}

func WithDeletionQueue(cleaner DeletionQueue) ServerOption {
	return func(s *Server) {
		s.cleaner = cleaner
	}
}

func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

func NewServer(opts ...ServerOption) *Server {
	s := &Server{started: time.Now()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	traced := otelhttp.NewHandler(loggingMiddleware(s.logger, mux), "movie-bot",
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/metrics" && r.URL.Path != "/health"
		}),
	)
	s.handler = recoveryMiddleware(s.logger, rateLimitMiddleware(50, 100, metricsMiddleware(traced)))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

type healthResponse struct {
	Status           string `json:"status"`
	UptimeSeconds    int64  `json:"uptimeSeconds"`
	RegisteredUsers  *int64 `json:"registeredUsers,omitempty"`
	PendingDeletions *int   `json:"pendingDeletions,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}

	resp := healthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
	}
	if s.users != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if count, err := s.users.Count(ctx); err == nil {
			resp.RegisteredUsers = &count
		} else {
			resp.Status = "degraded"
			s.logger.Warn("health user count failed", slog.String("error", err.Error()))
		}
	}
	if s.cleaner != nil {
		pending := s.cleaner.Pending()
		resp.PendingDeletions = &pending
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
