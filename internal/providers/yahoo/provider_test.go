package yahoo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsheet/finsheet/internal/provider"
	"github.com/finsheet/finsheet/pkg/models"
)

func newTestClient(baseURL string) *Client {
	return New(Options{BaseURL: baseURL, RequestsPerMinute: -1})
}

// chartBody builds a one-result chart payload from parallel bar slices.
func chartBody(t *testing.T, timestamps []int64, closes []any) string {
	t.Helper()
	payload := map[string]any{
		"chart": map[string]any{
			"result": []any{map[string]any{
				"meta":      map[string]any{"symbol": "AAPL", "currency": "USD"},
				"timestamp": timestamps,
				"indicators": map[string]any{
					"quote": []any{map[string]any{"close": closes}},
				},
			}},
			"error": nil,
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal chart payload: %v", err)
	}
	return string(data)
}

func bodyServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProviderInfo(t *testing.T) {
	c := New(Options{})
	info := c.Info()
	if info.Name != "yahoo" {
		t.Errorf("name: got %s", info.Name)
	}
	if info.RequiresKey {
		t.Error("yahoo needs no API key")
	}
}

func TestFetchPrices(t *testing.T) {
	thisYear := time.Now().UTC().Year()
	lastYear := thisYear - 1

	ts := []int64{
		time.Date(lastYear, time.June, 1, 21, 0, 0, 0, time.UTC).Unix(),
		time.Date(lastYear, time.December, 29, 21, 0, 0, 0, time.UTC).Unix(),
		time.Date(thisYear, time.March, 1, 21, 0, 0, 0, time.UTC).Unix(),
	}
	closes := []any{100.0, 192.534, 175.25}

	var gotPath, gotInterval string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInterval = r.URL.Query().Get("interval")
		w.Write([]byte(chartBody(t, ts, closes)))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	records, err := c.FetchPrices(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchPrices: %v", err)
	}

	if gotPath != "/v8/finance/chart/AAPL" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotInterval != "1d" {
		t.Errorf("interval: got %q, want 1d", gotInterval)
	}

	if len(records) != models.MaxYears {
		t.Fatalf("got %d records, want %d (one per year in the window)", len(records), models.MaxYears)
	}
	if records[0].Year != thisYear {
		t.Errorf("first year: got %d, want %d (newest first)", records[0].Year, thisYear)
	}
	if records[len(records)-1].Year != thisYear-models.MaxYears+1 {
		t.Errorf("last year: got %d", records[len(records)-1].Year)
	}

	// In-progress year uses the latest available close.
	if records[0].Close == nil || !records[0].Close.Equal(decimal.NewFromFloat(175.25)) {
		t.Errorf("current year close: got %v", records[0].Close)
	}
	// Completed year uses the final trading day, rounded to 2 dp.
	if records[1].Close == nil || !records[1].Close.Equal(decimal.NewFromFloat(192.53)) {
		t.Errorf("last year close: got %v, want 192.53", records[1].Close)
	}
	// Years with no bars stay nil.
	if records[2].Close != nil {
		t.Errorf("empty year close: got %v, want nil", records[2].Close)
	}
}

func TestFetchPricesChartError(t *testing.T) {
	body := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`
	srv := bodyServer(t, http.StatusNotFound, body)

	c := newTestClient(srv.URL)
	_, err := c.FetchPrices(context.Background(), "NOPE")
	if !provider.IsKind(err, provider.KindProviderError) {
		t.Fatalf("got %v, want provider_error", err)
	}
	if !strings.Contains(err.Error(), "No data found") {
		t.Errorf("error should carry the chart error description: %v", err)
	}
}

func TestFetchPricesEmptyResult(t *testing.T) {
	srv := bodyServer(t, http.StatusOK, `{"chart":{"result":[],"error":null}}`)
	c := newTestClient(srv.URL)
	_, err := c.FetchPrices(context.Background(), "AAPL")
	if !provider.IsKind(err, provider.KindNoData) {
		t.Errorf("got %v, want no_data", err)
	}
}

func TestFetchPricesNoTradingDays(t *testing.T) {
	srv := bodyServer(t, http.StatusOK, chartBody(t, nil, nil))
	c := newTestClient(srv.URL)
	_, err := c.FetchPrices(context.Background(), "AAPL")
	if !provider.IsKind(err, provider.KindNoData) {
		t.Errorf("got %v, want no_data", err)
	}
}

func TestFetchPricesHTTPErrorWithoutEnvelope(t *testing.T) {
	srv := bodyServer(t, http.StatusInternalServerError, `<html>it broke</html>`)
	c := newTestClient(srv.URL)
	_, err := c.FetchPrices(context.Background(), "AAPL")
	if !provider.IsKind(err, provider.KindProviderError) {
		t.Errorf("got %v, want provider_error", err)
	}
}

func TestFetchPricesMalformedBody(t *testing.T) {
	srv := bodyServer(t, http.StatusOK, `not json at all`)
	c := newTestClient(srv.URL)
	_, err := c.FetchPrices(context.Background(), "AAPL")
	if !provider.IsKind(err, provider.KindNoData) {
		t.Errorf("got %v, want no_data", err)
	}
}

func TestFetchPricesNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.FetchPrices(context.Background(), "AAPL")
	if !provider.IsKind(err, provider.KindNetworkFailure) {
		t.Errorf("got %v, want network_failure", err)
	}
}

func TestYearEndCloses(t *testing.T) {
	dec28 := time.Date(2023, time.December, 28, 21, 0, 0, 0, time.UTC).Unix()
	dec29 := time.Date(2023, time.December, 29, 21, 0, 0, 0, time.UTC).Unix()
	jun15 := time.Date(2022, time.June, 15, 21, 0, 0, 0, time.UTC).Unix()

	c1, c2 := 101.5, 99.25
	result := chartResult{
		// Out of order on purpose; the latest bar must still win.
		Timestamp: []int64{dec29, jun15, dec28},
		Indicators: indicators{Quote: []quoteBars{{
			Close: []*float64{nil, &c2, &c1},
		}}},
	}

	byYear := yearEndCloses(result)
	// dec29 close is null, so dec28 carries 2023.
	if got := byYear[2023]; got != 101.5 {
		t.Errorf("2023: got %v, want 101.5", got)
	}
	if got := byYear[2022]; got != 99.25 {
		t.Errorf("2022: got %v, want 99.25", got)
	}
	if _, ok := byYear[2021]; ok {
		t.Error("2021 should be absent")
	}
}
