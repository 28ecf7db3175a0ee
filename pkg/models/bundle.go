package models

// ExportBundle is everything one export action writes: the per-type
// statement records plus the year-end closing prices for one symbol.
// It is built fresh per export and discarded after the file is written.
type ExportBundle struct {
	Symbol     string                            `json:"symbol"`
	Report     ReportType                        `json:"report"`
	Statements map[StatementType][]StatementRecord `json:"statements"`
	Prices     []PriceRecord                     `json:"prices"`
}

// HasStatementData reports whether at least one statement type has records.
func (b *ExportBundle) HasStatementData() bool {
	if b == nil {
		return false
	}
	for _, recs := range b.Statements {
		if len(recs) > 0 {
			return true
		}
	}
	return false
}
