// Package provider defines the contracts the statement and price clients
// implement, plus the error taxonomy every fetch surfaces to callers.
package provider

import (
	"context"

	"github.com/finsheet/finsheet/pkg/models"
)

// Info holds metadata about a configured provider.
type Info struct {
	Name        string `json:"name"`        // e.g., "alphavantage"
	Description string `json:"description"` // human-readable description
	Website     string `json:"website"`     // e.g., "https://www.alphavantage.co"
	RequiresKey bool   `json:"requires_key"`
}

// StatementSource fetches financial statements. Implementations return the
// full depth the provider has for the symbol, normalized and ordered
// most-recent-first; truncation to the requested year count happens in the
// service layer so the cache can hold the complete set.
type StatementSource interface {
	// Info returns metadata about this provider.
	Info() Info

	// FetchStatement retrieves every reported period of one statement type.
	FetchStatement(ctx context.Context, symbol string, st models.StatementType, report models.ReportType) ([]models.StatementRecord, error)

	// ValidateKey verifies the configured credentials with a cheap request.
	ValidateKey(ctx context.Context) error
}

// PriceSource fetches year-end closing prices. Implementations return one
// record per calendar year over the maximum supported window, ordered
// most-recent-first.
type PriceSource interface {
	// Info returns metadata about this provider.
	Info() Info

	// FetchPrices retrieves year-end closes for the last models.MaxYears
	// calendar years, including the in-progress year.
	FetchPrices(ctx context.Context, symbol string) ([]models.PriceRecord, error)
}
