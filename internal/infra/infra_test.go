package infra

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent header")
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("expected Accept header, got %q", r.Header.Get("Accept"))
		}
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	body, status, err := DoGet(context.Background(), srv.URL, map[string]string{"Accept": "application/json"})
	if err != nil {
		t.Fatalf("DoGet: %v", err)
	}
	defer body.Close()

	if status != http.StatusTeapot {
		t.Errorf("status: got %d, want %d", status, http.StatusTeapot)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if string(data) != "short and stout" {
		t.Errorf("body: got %q", data)
	}
}

func TestDoGetConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, _, err := DoGet(context.Background(), srv.URL, nil)
	if err == nil {
		t.Fatal("expected error for closed server")
	}
}

func TestDoGetCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	if _, _, err := DoGet(ctx, srv.URL, nil); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestPacerSpacesCalls(t *testing.T) {
	// 1200 calls/min = one slot every 50ms.
	p := NewPacer(1200)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	elapsed := time.Since(start)

	// First call is immediate, the next two wait ~50ms each.
	if elapsed < 80*time.Millisecond {
		t.Errorf("three paced calls finished in %v, expected >= 80ms", elapsed)
	}
}

func TestPacerDisabled(t *testing.T) {
	for _, p := range []*Pacer{nil, NewPacer(0), NewPacer(-5)} {
		start := time.Now()
		for i := 0; i < 100; i++ {
			if err := p.Wait(context.Background()); err != nil {
				t.Fatalf("Wait: %v", err)
			}
		}
		if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
			t.Errorf("disabled pacer waited %v", elapsed)
		}
	}
}

func TestPacerHonorsCancellation(t *testing.T) {
	p := NewPacer(1) // one slot per minute
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := p.Wait(ctx)
	if err == nil {
		t.Fatal("expected context error while waiting for next slot")
	}
	if time.Since(start) > time.Second {
		t.Error("Wait did not return promptly after cancellation")
	}
}
