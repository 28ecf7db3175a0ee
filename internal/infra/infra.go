// Package infra provides the shared HTTP and request-pacing primitives used
// by the provider clients.
package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Some endpoints reject requests without a browser-looking User-Agent.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) finsheet/1.0"

var (
	clientMu   sync.RWMutex
	httpClient = &http.Client{Timeout: 30 * time.Second}
)

// SetHTTPTimeout replaces the shared client's timeout. Called once at
// startup from configuration; not intended for per-request use.
func SetHTTPTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	clientMu.Lock()
	httpClient = &http.Client{Timeout: d}
	clientMu.Unlock()
}

// DoGet issues a GET request with optional extra headers and returns the
// response body and HTTP status code. The caller owns the body and must
// close it. A non-2xx status is not an error here; callers decide.
func DoGet(ctx context.Context, rawURL string, headers map[string]string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	clientMu.RLock()
	client := httpClient
	clientMu.RUnlock()

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	return resp.Body, resp.StatusCode, nil
}

// --- Request pacer ---

// Pacer enforces a minimum interval between successive calls so a client
// stays inside a per-minute provider quota without bursting. A nil Pacer
// never waits.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
}

// NewPacer returns a pacer that spaces calls evenly across a minute.
// perMinute <= 0 disables pacing.
func NewPacer(perMinute int) *Pacer {
	if perMinute <= 0 {
		return &Pacer{}
	}
	return &Pacer{interval: time.Minute / time.Duration(perMinute)}
}

// Wait blocks until the caller may proceed or the context is cancelled.
// Waiting slots are handed out in call order.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.interval <= 0 {
		return nil
	}

	p.mu.Lock()
	now := time.Now()
	if p.next.Before(now) {
		p.next = now
	}
	wait := p.next.Sub(now)
	p.next = p.next.Add(p.interval)
	p.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
