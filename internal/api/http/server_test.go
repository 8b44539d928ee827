package apihttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubCounter struct {
	count int64
	err   error
}

func (s stubCounter) Count(context.Context) (int64, error) {
	return s.count, s.err
}

type stubQueue struct {
	pending int
}

func (s stubQueue) Pending() int {
	return s.pending
}

func TestHealthEndpoint(t *testing.T) {
	srv := NewServer(
		WithUserCounter(stubCounter{count: 3}),
		WithDeletionQueue(stubQueue{pending: 2}),
	)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("status field: got %q", resp.Status)
	}
	if resp.RegisteredUsers == nil || *resp.RegisteredUsers != 3 {
		t.Fatalf("registeredUsers: got %v", resp.RegisteredUsers)
	}
	if resp.PendingDeletions == nil || *resp.PendingDeletions != 2 {
		t.Fatalf("pendingDeletions: got %v", resp.PendingDeletions)
	}
}

func TestHealthDegradedWhenUserCountFails(t *testing.T) {
	srv := NewServer(WithUserCounter(stubCounter{err: errors.New("mongo down")}))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "degraded" {
		t.Fatalf("status field: got %q, want degraded", resp.Status)
	}
}

func TestHealthRejectsNonGET(t *testing.T) {
	srv := NewServer()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: got %d, want 405", rec.Code)
	}
}

func TestMetricsEndpointServesPrometheusFormat(t *testing.T) {
	srv := NewServer()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
}
