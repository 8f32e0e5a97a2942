// Package sheet turns a loosely formatted portfolio spreadsheet export into a
// typed snapshot. It performs no I/O and keeps no state between calls.
package sheet

import "StockPortfolio/internal/model"

// Process runs the summary and table extractors over the same rows.
func Process(rows []Row) model.Snapshot {
	return model.Snapshot{
		Summary: ExtractSummary(rows),
		Stocks:  ExtractStocks(rows),
	}
}

// Parse decodes CSV text and extracts a snapshot from it. No partial snapshot
// is returned when the text is not valid CSV.
func Parse(text string) (model.Snapshot, error) {
	rows, err := ParseRows(text)
	if err != nil {
		return model.Snapshot{}, err
	}
	return Process(rows), nil
}
