package alphavantage

import (
	"context"
	"net/url"

	"github.com/finsheet/finsheet/internal/provider"
)

// --- Key validation ---

// validationSymbol is a ticker guaranteed to exist, used to probe the key.
const validationSymbol = "AAPL"

// ValidateKey verifies the configured API key with a cheap SYMBOL_SEARCH
// request. It costs one call against the daily quota.
func (c *Client) ValidateKey(ctx context.Context) error {
	if c.apiKey == "" {
		return provider.ProviderFailure(providerName, "no API key configured")
	}

	q := url.Values{}
	q.Set("function", "SYMBOL_SEARCH")
	q.Set("keywords", validationSymbol)
	q.Set("apikey", c.apiKey)

	var payload searchPayload
	if err := c.fetch(ctx, q, &payload); err != nil {
		return err
	}
	if msg := payload.errorText(); msg != "" {
		return provider.ProviderFailure(providerName, msg)
	}
	if len(payload.BestMatches) == 0 {
		return provider.NoData(providerName, "symbol search returned no matches")
	}
	return nil
}
