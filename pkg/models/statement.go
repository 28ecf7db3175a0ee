// Package models defines the core data structures shared across finsheet:
// fetch requests, normalized statement and price records, the canonical
// line-item vocabulary, and the export bundle.
package models

import (
	"fmt"
	"time"
)

// StatementType identifies one of the three financial statements.
type StatementType string

const (
	StatementIncome   StatementType = "income"
	StatementBalance  StatementType = "balance"
	StatementCashFlow StatementType = "cashflow"
)

// AllStatementTypes returns the statement types in display order.
func AllStatementTypes() []StatementType {
	return []StatementType{StatementIncome, StatementBalance, StatementCashFlow}
}

// DisplayName returns the human-readable statement name, also used as the
// sheet name on export.
func (st StatementType) DisplayName() string {
	switch st {
	case StatementIncome:
		return "Income Statement"
	case StatementBalance:
		return "Balance Sheet"
	case StatementCashFlow:
		return "Cash Flow"
	default:
		return string(st)
	}
}

// ParseStatementType converts a user-supplied string to a StatementType.
func ParseStatementType(s string) (StatementType, error) {
	switch s {
	case "income", "income_statement", "income-statement":
		return StatementIncome, nil
	case "balance", "balance_sheet", "balance-sheet":
		return StatementBalance, nil
	case "cashflow", "cash_flow", "cash-flow":
		return StatementCashFlow, nil
	default:
		return "", fmt.Errorf("unknown statement type %q", s)
	}
}

// ReportType is the reporting frequency of a statement.
type ReportType string

const (
	ReportAnnual    ReportType = "annual"
	ReportQuarterly ReportType = "quarterly"
)

// ParseReportType converts a user-supplied string to a ReportType.
// Accepts "annual", "quarter", and "quarterly".
func ParseReportType(s string) (ReportType, error) {
	switch s {
	case "annual":
		return ReportAnnual, nil
	case "quarter", "quarterly":
		return ReportQuarterly, nil
	default:
		return "", fmt.Errorf("unknown report type %q (want annual or quarterly)", s)
	}
}

// StatementRecord is one reported fiscal period of a single statement type.
// LineItems is keyed by the canonical vocabulary; a nil value means the
// provider did not report that item (or reported an unusable value).
type StatementRecord struct {
	PeriodEnd time.Time           `json:"period_end"`
	Currency  string              `json:"currency,omitempty"`
	LineItems map[string]*float64 `json:"line_items"`
}
