// Package yahoo implements the Yahoo Finance price source. It uses the
// public v8 chart API, which needs no API key but expects a browser-looking
// User-Agent.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/finsheet/finsheet/internal/infra"
	"github.com/finsheet/finsheet/internal/provider"
)

const (
	providerName     = "yahoo"
	defaultBaseURL   = "https://query1.finance.yahoo.com"
	defaultPerMinute = 30

	maxSnippetLen = 200
)

// Options configures a Client. Zero values fall back to defaults;
// RequestsPerMinute < 0 disables pacing.
type Options struct {
	BaseURL           string
	RequestsPerMinute int
}

// Client fetches year-end closing prices from Yahoo Finance. It implements
// provider.PriceSource.
type Client struct {
	baseURL string
	pacer   *infra.Pacer
}

// New creates a Yahoo Finance client.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	perMinute := opts.RequestsPerMinute
	if perMinute == 0 {
		perMinute = defaultPerMinute
	}
	return &Client{
		baseURL: baseURL,
		pacer:   infra.NewPacer(perMinute),
	}
}

// Info describes the provider.
func (c *Client) Info() provider.Info {
	return provider.Info{
		Name:        providerName,
		Description: "Yahoo Finance - historical closing prices",
		Website:     "https://finance.yahoo.com",
		RequiresKey: false,
	}
}

// --- Shared helpers ---

// fetchChart performs a paced GET and decodes the chart envelope. Yahoo
// reports symbol-level problems in chart.error, sometimes alongside a
// non-2xx status, so the body is decoded before the status is judged.
func (c *Client) fetchChart(ctx context.Context, rawURL string) (*chartResponse, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	body, status, err := infra.DoGet(ctx, rawURL, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, provider.NetworkFailure(providerName, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, provider.NetworkFailure(providerName, err)
	}

	var resp chartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		if status < 200 || status > 299 {
			return nil, provider.ProviderFailure(providerName, fmt.Sprintf("HTTP %d: %s", status, snippet(data)))
		}
		return nil, provider.NoData(providerName, fmt.Sprintf("undecodable response: %v", err))
	}
	if e := resp.Chart.Error; e != nil {
		return nil, provider.ProviderFailure(providerName, fmt.Sprintf("%s: %s", e.Code, e.Description))
	}
	if status < 200 || status > 299 {
		return nil, provider.ProviderFailure(providerName, fmt.Sprintf("HTTP %d: %s", status, snippet(data)))
	}
	return &resp, nil
}

// snippet truncates a response body for error messages.
func snippet(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > maxSnippetLen {
		s = s[:maxSnippetLen] + "..."
	}
	return s
}
