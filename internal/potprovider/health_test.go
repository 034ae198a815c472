package potprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestWaitReadyImmediateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := waitReady(context.Background(), srv.Client(), srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("waitReady should succeed against a healthy endpoint: %v", err)
	}
}

func TestWaitReadyAcceptsNon5xx(t *testing.T) {
	// A 404 on /health still proves the HTTP server is up
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := waitReady(context.Background(), srv.Client(), srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("waitReady should treat non-5xx as ready: %v", err)
	}
}

func TestWaitReadyRetriesUntilHealthy(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 4 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := waitReady(context.Background(), srv.Client(), srv.URL, 10*time.Second)
	if err != nil {
		t.Fatalf("waitReady should retry until healthy: %v", err)
	}
	if calls.Load() < 4 {
		t.Errorf("Expected at least 4 probes, got %d", calls.Load())
	}
}

func TestWaitReadyGivesUpAfterBudget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	start := time.Now()
	err := waitReady(context.Background(), srv.Client(), srv.URL, 700*time.Millisecond)
	if err == nil {
		t.Fatal("waitReady should fail once the backoff budget is exhausted")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("waitReady should respect the budget, took %s", elapsed)
	}
}

func TestWaitReadyUnreachableEndpoint(t *testing.T) {
	// Port 0 is never listening
	err := waitReady(context.Background(), &http.Client{}, "http://127.0.0.1:0", 500*time.Millisecond)
	if err == nil {
		t.Fatal("waitReady should fail against an unreachable endpoint")
	}
}

func TestWaitReadyHonorsContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := waitReady(ctx, srv.Client(), srv.URL, time.Minute)
	if err == nil {
		t.Fatal("waitReady should fail when the context is cancelled")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Cancellation should stop polling promptly, took %s", elapsed)
	}
}
