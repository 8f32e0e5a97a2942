package sheet

import "StockPortfolio/internal/model"

// Summary anchor labels, matched against whole cells.
const (
	AnchorInitialInvestment = "Initial Investment"
	AnchorCurrentTotalValue = "Current Total Value"
	AnchorChange            = "Change"
)

// ExtractSummary reads the summary values that follow the anchor labels. Every
// row is scanned, so when an anchor repeats the last row wins. Anchors that
// never appear leave their fields nil.
func ExtractSummary(rows []Row) model.SummaryRecord {
	var s model.SummaryRecord
	for _, row := range rows {
		if rest, ok := after(row, AnchorInitialInvestment); ok {
			s.InitialInvestment = model.StrPtr(nth(nonEmpty(rest), 0))
		}
		if rest, ok := after(row, AnchorCurrentTotalValue); ok {
			s.CurrentTotalValue = model.StrPtr(nth(nonEmpty(rest), 0))
		}
		if rest, ok := after(row, AnchorChange); ok {
			values := nonEmpty(rest)
			s.Change = model.StrPtr(nth(values, 0))
			s.ChangePercent = model.StrPtr(nth(values, 1))
		}
	}
	return s
}

// after returns the cells to the right of the first cell equal to label.
func after(row Row, label string) (Row, bool) {
	i := row.index(label)
	if i < 0 {
		return nil, false
	}
	return row[i+1:], true
}

func nonEmpty(cells Row) []string {
	var out []string
	for _, c := range cells {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

func nth(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
