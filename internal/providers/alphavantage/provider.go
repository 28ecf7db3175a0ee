// Package alphavantage implements the Alpha Vantage statement source.
// Alpha Vantage serves company financial statements (income statement,
// balance sheet, cash flow) via a REST API with API key authentication.
//
// Free tier: 5 requests/minute, 25 requests/day.
// Docs: https://www.alphavantage.co/documentation/
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/finsheet/finsheet/internal/infra"
	"github.com/finsheet/finsheet/internal/provider"
)

const (
	providerName     = "alphavantage"
	defaultBaseURL   = "https://www.alphavantage.co"
	defaultPerMinute = 5

	maxSnippetLen = 200
)

// Options configures a Client. Zero values fall back to free-tier defaults;
// RequestsPerMinute < 0 disables pacing.
type Options struct {
	APIKey            string
	BaseURL           string
	RequestsPerMinute int
}

// Client fetches financial statements from Alpha Vantage. It implements
// provider.StatementSource.
type Client struct {
	apiKey  string
	baseURL string
	pacer   *infra.Pacer
}

// New creates an Alpha Vantage client.
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
		apiKey:  opts.APIKey,
		baseURL: baseURL,
		pacer:   infra.NewPacer(perMinute),
	}
}

// Info describes the provider.
func (c *Client) Info() provider.Info {
	return provider.Info{
		Name:        providerName,
		Description: "Alpha Vantage - company financial statements",
		Website:     "https://www.alphavantage.co",
		RequiresKey: true,
	}
}

// --- Shared helpers ---

func jsonHeaders() map[string]string {
	return map[string]string{"Accept": "application/json"}
}

// queryURL builds a full Alpha Vantage query URL.
func (c *Client) queryURL(params url.Values) string {
	return c.baseURL + "/query?" + params.Encode()
}

// fetch performs a paced GET against the Alpha Vantage API and decodes the
// response into dest. Returned errors are already classified FetchErrors,
// except for context cancellation which passes through unwrapped.
func (c *Client) fetch(ctx context.Context, params url.Values, dest any) error {
	if err := c.pacer.Wait(ctx); err != nil {
		return err
	}

	body, status, err := infra.DoGet(ctx, c.queryURL(params), jsonHeaders())
	if err != nil {
		return provider.NetworkFailure(providerName, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return provider.NetworkFailure(providerName, err)
	}
	if status < 200 || status > 299 {
		return provider.ProviderFailure(providerName, fmt.Sprintf("HTTP %d: %s", status, snippet(data)))
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return provider.NoData(providerName, fmt.Sprintf("undecodable response: %v", err))
	}
	return nil
}

// snippet truncates a response body for error messages.
func snippet(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > maxSnippetLen {
		s = s[:maxSnippetLen] + "..."
	}
	return s
}
