package models

import (
	"fmt"
	"strings"
)

// Year count bounds for a single fetch. The cap keeps one user action from
// consuming an unbounded slice of the provider quota.
const (
	MinYears = 1
	MaxYears = 15
)

// FetchRequest describes one user-initiated retrieval. Construct it with
// NewFetchRequest so the symbol is validated and the year count clamped.
type FetchRequest struct {
	Symbol string     `json:"symbol"`
	Report ReportType `json:"report"`
	Years  int        `json:"years"`
}

// NewFetchRequest validates and canonicalizes the inputs: the symbol is
// trimmed and uppercased, the year count clamped to [MinYears, MaxYears].
func NewFetchRequest(symbol string, report ReportType, years int) (FetchRequest, error) {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if err := ValidateSymbol(sym); err != nil {
		return FetchRequest{}, err
	}
	if report != ReportAnnual && report != ReportQuarterly {
		return FetchRequest{}, fmt.Errorf("unknown report type %q", report)
	}
	return FetchRequest{Symbol: sym, Report: report, Years: ClampYears(years)}, nil
}

// ClampYears bounds a year count to [MinYears, MaxYears].
func ClampYears(n int) int {
	if n < MinYears {
		return MinYears
	}
	if n > MaxYears {
		return MaxYears
	}
	return n
}

// ValidateSymbol checks that a ticker is non-empty and contains only
// letters, digits, dots, and hyphens (covers class shares like BRK.B).
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("symbol is empty")
	}
	for _, r := range symbol {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-':
		default:
			return fmt.Errorf("symbol %q contains invalid character %q", symbol, r)
		}
	}
	return nil
}
