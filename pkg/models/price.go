package models

import "github.com/shopspring/decimal"

// PriceRecord is the closing price on the last trading day of one calendar
// year, rounded to two decimal places. For the in-progress year it carries
// the latest available close. A nil Close means the symbol had no trading
// data in that year.
type PriceRecord struct {
	Year  int              `json:"year"`
	Close *decimal.Decimal `json:"close"`
}
