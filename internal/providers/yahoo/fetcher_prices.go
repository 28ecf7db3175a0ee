package yahoo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsheet/finsheet/internal/provider"
	"github.com/finsheet/finsheet/pkg/models"
)

// --- Price fetching ---

// FetchPrices retrieves the year-end close for each of the last
// models.MaxYears calendar years, newest first. The in-progress year
// carries the latest available close. Years without trading data get a
// nil Close so callers can tell "no data" from zero.
func (c *Client) FetchPrices(ctx context.Context, symbol string) ([]models.PriceRecord, error) {
	now := time.Now().UTC()
	firstYear := now.Year() - models.MaxYears + 1
	from := time.Date(firstYear, time.January, 1, 0, 0, 0, 0, time.UTC)

	url := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, symbol, from.Unix(), now.Unix())

	resp, err := c.fetchChart(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, provider.NoData(providerName, fmt.Sprintf("no chart data for %s", symbol))
	}

	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return nil, provider.NoData(providerName, fmt.Sprintf("no trading days for %s", symbol))
	}

	closes := yearEndCloses(result)

	records := make([]models.PriceRecord, 0, models.MaxYears)
	for year := now.Year(); year >= firstYear; year-- {
		rec := models.PriceRecord{Year: year}
		if v, ok := closes[year]; ok {
			d := decimal.NewFromFloat(v).Round(2)
			rec.Close = &d
		}
		records = append(records, rec)
	}
	return records, nil
}

// yearEndCloses reduces daily bars to the close of the latest bar in each
// calendar year (UTC). Null bars are skipped; bar order is not trusted.
func yearEndCloses(result chartResult) map[int]float64 {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	closes := result.Indicators.Quote[0].Close

	type lastBar struct {
		ts    int64
		close float64
	}
	latest := make(map[int]lastBar)
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		year := time.Unix(ts, 0).UTC().Year()
		if b, ok := latest[year]; !ok || ts > b.ts {
			latest[year] = lastBar{ts: ts, close: *closes[i]}
		}
	}

	byYear := make(map[int]float64, len(latest))
	for year, b := range latest {
		byYear[year] = b.close
	}
	return byYear
}
