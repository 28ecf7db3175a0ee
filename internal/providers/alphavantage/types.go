package alphavantage

// --- Alpha Vantage API response types ---

// errorEnvelope holds the fields Alpha Vantage uses to report problems
// inside an HTTP 200 body. "Note" and "Information" carry rate-limit
// notices; "Error Message" carries everything else.
type errorEnvelope struct {
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
}

// errorText returns the first populated envelope field.
func (e *errorEnvelope) errorText() string {
	switch {
	case e.ErrorMessage != "":
		return e.ErrorMessage
	case e.Note != "":
		return e.Note
	case e.Information != "":
		return e.Information
	}
	return ""
}

// statementPayload wraps the INCOME_STATEMENT, BALANCE_SHEET and CASH_FLOW
// responses. Reports stay raw maps: Alpha Vantage sends every figure as a
// string and the normalize package owns the parsing.
type statementPayload struct {
	errorEnvelope

	Symbol           string           `json:"symbol"`
	AnnualReports    []map[string]any `json:"annualReports"`
	QuarterlyReports []map[string]any `json:"quarterlyReports"`
}

// searchPayload wraps the SYMBOL_SEARCH response used for key validation.
type searchPayload struct {
	errorEnvelope

	BestMatches []map[string]any `json:"bestMatches"`
}
