// Package export writes fetched bundles to multi-sheet .xlsx workbooks.
package export

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/finsheet/finsheet/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Export Errors
// ════════════════════════════════════════════════════════════════════

// ErrorKind classifies a failed export.
type ErrorKind string

const (
	// KindIOFailure covers everything the filesystem or the workbook
	// writer can throw: bad paths, permissions, disk errors.
	KindIOFailure ErrorKind = "io_failure"

	// KindNoData means no statement type had a single record. The export
	// is refused before any file is created; prices alone do not make a
	// workbook worth writing.
	KindNoData ErrorKind = "no_data_to_export"
)

// ExportError is the error type returned by the exporter.
type ExportError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("export %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("export %s: %s", e.Path, e.Kind)
}

func (e *ExportError) Unwrap() error { return e.Err }

// IsKind reports whether err is (or wraps) an ExportError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ee *ExportError
	if errors.As(err, &ee) {
		return ee.Kind == kind
	}
	return false
}

// ════════════════════════════════════════════════════════════════════
// Workbook Writer — one sheet per non-empty dataset
// ════════════════════════════════════════════════════════════════════

const (
	priceSheetName = "Year-End Closing Prices"
	headerPeriod   = "periodEnd"
	dateLayout     = "2006-01-02"
)

// DefaultFilename returns the conventional workbook name for a symbol.
func DefaultFilename(symbol string) string {
	return symbol + "_financials.xlsx"
}

// ToFile writes the bundle to path as an .xlsx workbook: one sheet per
// non-empty statement type in display order, then a price sheet when
// prices exist. Rows are periods, newest first; numbers are written as
// native numeric cells and missing values stay empty, never zero.
func ToFile(bundle *models.ExportBundle, path string) error {
	if !bundle.HasStatementData() {
		return &ExportError{Kind: KindNoData, Path: path}
	}

	f := excelize.NewFile()
	defer f.Close()

	activeSet := false
	for _, st := range models.AllStatementTypes() {
		records := bundle.Statements[st]
		if len(records) == 0 {
			continue
		}
		idx, err := writeStatementSheet(f, st, records)
		if err != nil {
			return &ExportError{Kind: KindIOFailure, Path: path, Err: err}
		}
		if !activeSet {
			f.SetActiveSheet(idx)
			activeSet = true
		}
	}

	if len(bundle.Prices) > 0 {
		if _, err := writePriceSheet(f, bundle.Prices); err != nil {
			return &ExportError{Kind: KindIOFailure, Path: path, Err: err}
		}
	}

	// Drop the implicit default sheet; our own sheets replace it.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return &ExportError{Kind: KindIOFailure, Path: path, Err: err}
	}
	if err := f.SaveAs(path); err != nil {
		return &ExportError{Kind: KindIOFailure, Path: path, Err: err}
	}
	return nil
}

// writeStatementSheet renders one statement type: a header of the period
// column plus the canonical vocabulary, then one row per reported period.
func writeStatementSheet(f *excelize.File, st models.StatementType, records []models.StatementRecord) (int, error) {
	sheet := st.DisplayName()
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return 0, err
	}

	items := models.CanonicalLineItems(st)
	header := append([]string{headerPeriod}, items...)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return 0, err
	}

	for i, rec := range records {
		row := make([]any, 0, len(header))
		row = append(row, rec.PeriodEnd.Format(dateLayout))
		for _, item := range items {
			if v := rec.LineItems[item]; v != nil {
				row = append(row, *v)
			} else {
				row = append(row, nil)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return 0, err
		}
	}
	return idx, nil
}

// writePriceSheet renders the year-end closes, one row per calendar year.
func writePriceSheet(f *excelize.File, prices []models.PriceRecord) (int, error) {
	idx, err := f.NewSheet(priceSheetName)
	if err != nil {
		return 0, err
	}

	header := []string{"year", "closePrice"}
	if err := f.SetSheetRow(priceSheetName, "A1", &header); err != nil {
		return 0, err
	}

	for i, rec := range prices {
		row := []any{rec.Year, nil}
		if rec.Close != nil {
			row[1] = rec.Close.InexactFloat64()
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := f.SetSheetRow(priceSheetName, cell, &row); err != nil {
			return 0, err
		}
	}
	return idx, nil
}
