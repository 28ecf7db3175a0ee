package alphavantage

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/finsheet/finsheet/internal/normalize"
	"github.com/finsheet/finsheet/internal/provider"
	"github.com/finsheet/finsheet/pkg/models"
)

// --- Statement fetching ---

// statementFunctions maps statement types to Alpha Vantage function names.
var statementFunctions = map[models.StatementType]string{
	models.StatementIncome:   "INCOME_STATEMENT",
	models.StatementBalance:  "BALANCE_SHEET",
	models.StatementCashFlow: "CASH_FLOW",
}

// FetchStatement retrieves one statement for a symbol at the provider's
// full reporting depth, normalized and newest first. A rate-limit notice
// is a provider error like any other; the caller decides whether to try
// again later.
func (c *Client) FetchStatement(ctx context.Context, symbol string, st models.StatementType, report models.ReportType) ([]models.StatementRecord, error) {
	fn, ok := statementFunctions[st]
	if !ok {
		return nil, fmt.Errorf("unsupported statement type %q", st)
	}

	q := url.Values{}
	q.Set("function", fn)
	q.Set("symbol", symbol)
	q.Set("apikey", c.apiKey)

	var payload statementPayload
	if err := c.fetch(ctx, q, &payload); err != nil {
		return nil, fmt.Errorf("%s %s: %w", fn, symbol, err)
	}
	if msg := payload.errorText(); msg != "" {
		return nil, provider.ProviderFailure(providerName, msg)
	}

	reports := payload.AnnualReports
	if report == models.ReportQuarterly {
		reports = payload.QuarterlyReports
	}
	if len(reports) == 0 {
		return nil, provider.NoData(providerName, fmt.Sprintf("no %s reports for %s", report, symbol))
	}

	records, fieldErrs := normalize.Statement(reports, st)
	for _, fe := range fieldErrs {
		log.Warn().
			Str("provider", providerName).
			Str("symbol", symbol).
			Err(fe).
			Msg("could not normalize field")
	}
	if len(records) == 0 {
		return nil, provider.NoData(providerName, fmt.Sprintf("no usable %s reports for %s", report, symbol))
	}
	return records, nil
}
