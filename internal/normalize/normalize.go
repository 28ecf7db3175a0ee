// Package normalize converts raw provider reports into the canonical
// statement records the rest of finsheet works with. Normalization is
// forgiving: a value that cannot be parsed nils out that single line item,
// and only a missing or unparseable period date drops a whole report.
// Every problem is surfaced as a FieldError so callers can log it.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/finsheet/finsheet/pkg/models"
)

// periodLayout is the date format providers report fiscal period ends in.
const periodLayout = "2006-01-02"

// --- Errors ---

// FieldError records one value that could not be normalized. A FieldError
// for the period field means the whole report was dropped; any other field
// means only that line item was nilled out.
type FieldError struct {
	Statement models.StatementType
	Period    string // raw period string, empty when the period itself was missing
	Field     string
	Value     string
	Err       error
}

func (e *FieldError) Error() string {
	period := e.Period
	if period == "" {
		period = "?"
	}
	return fmt.Sprintf("%s %s %s=%q: %v", e.Statement, period, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

var errMissingPeriod = errors.New("no period field")

// --- Normalization ---

// Statement converts raw provider reports into canonical records, newest
// first. Every canonical line item for the statement type is present in
// each record's LineItems map; items the provider did not report are nil.
func Statement(raw []map[string]any, st models.StatementType) ([]models.StatementRecord, []*FieldError) {
	aliases := aliasesFor(st)
	records := make([]models.StatementRecord, 0, len(raw))
	var fieldErrs []*FieldError

	for _, report := range raw {
		periodStr, periodEnd, err := extractPeriod(report)
		if err != nil {
			fieldErrs = append(fieldErrs, &FieldError{
				Statement: st, Period: periodStr, Field: "periodEnd", Value: periodStr, Err: err,
			})
			continue
		}

		rec := models.StatementRecord{
			PeriodEnd: periodEnd,
			Currency:  extractCurrency(report),
			LineItems: make(map[string]*float64, len(aliases)),
		}
		for _, item := range models.CanonicalLineItems(st) {
			rawVal, ok := probe(report, aliases[item])
			if !ok {
				rec.LineItems[item] = nil
				continue
			}
			v, err := parseNumber(rawVal)
			if err != nil {
				fieldErrs = append(fieldErrs, &FieldError{
					Statement: st, Period: periodStr, Field: item,
					Value: fmt.Sprintf("%v", rawVal), Err: err,
				})
				rec.LineItems[item] = nil
				continue
			}
			rec.LineItems[item] = v
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PeriodEnd.After(records[j].PeriodEnd)
	})
	return records, fieldErrs
}

// probe returns the value of the first alias present in the report.
func probe(report map[string]any, aliases []string) (any, bool) {
	for _, name := range aliases {
		if v, ok := report[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func extractPeriod(report map[string]any) (string, time.Time, error) {
	v, ok := probe(report, periodAliases)
	if !ok {
		return "", time.Time{}, errMissingPeriod
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("%v", v), time.Time{}, fmt.Errorf("period is %T, want string", v)
	}
	s = strings.TrimSpace(s)
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return s, time.Time{}, err
	}
	return s, t, nil
}

func extractCurrency(report map[string]any) string {
	v, ok := probe(report, currencyAliases)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	if isNullSentinel(s) {
		return ""
	}
	return strings.TrimSpace(s)
}

// parseNumber coerces a raw value to a float pointer. Null sentinels map
// to nil without error; anything else that does not read as a number is
// an error.
func parseNumber(v any) (*float64, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return &val, nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, err
		}
		return &f, nil
	case string:
		s := strings.TrimSpace(val)
		if isNullSentinel(s) {
			return nil, nil
		}
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return &f, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// isNullSentinel reports whether a string is one of the placeholder values
// providers use for "no figure reported".
func isNullSentinel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "n/a", "na", "-", "—", "null":
		return true
	}
	return false
}
