package sheet

import "StockPortfolio/internal/model"

// TableState is the position of a TableExtractor within the document.
type TableState int

const (
	// Seeking means no header row has been seen yet.
	Seeking TableState = iota
	// InTable means a header row was captured; every later row is data.
	InTable
)

func (s TableState) String() string {
	switch s {
	case Seeking:
		return "seeking"
	case InTable:
		return "in_table"
	default:
		return "unknown"
	}
}

// Header labels that mark the start of the stock table.
const (
	HeaderSymbol           = "Symbol"
	HeaderStockName        = "Stock Name"
	HeaderStockNameNoSpace = "StockName"
)

// TableExtractor turns the rows below the first header row into stock records.
// Only one table is read per document: once InTable it never goes back.
type TableExtractor struct {
	state  TableState
	header Row
}

// State reports whether a header row has been captured.
func (t *TableExtractor) State() TableState { return t.state }

// Header returns the captured header row, nil while Seeking.
func (t *TableExtractor) Header() Row { return t.header }

// Feed consumes one row. It returns a record only for data rows with a
// non-empty symbol; the header row itself is never returned.
func (t *TableExtractor) Feed(row Row) (model.StockRecord, bool) {
	switch t.state {
	case Seeking:
		if isHeaderRow(row) {
			t.header = row
			t.state = InTable
		}
		return nil, false
	case InTable:
		stock := t.record(row)
		// The symbol is checked directly; aliases are applied at render time only.
		if stock.Symbol() == "" {
			return nil, false
		}
		return stock, true
	}
	return nil, false
}

func (t *TableExtractor) record(row Row) model.StockRecord {
	stock := make(model.StockRecord, len(t.header))
	for i, label := range t.header {
		if label == "" {
			continue
		}
		stock[NormalizeHeader(label)] = row.cell(i)
	}
	return stock
}

func isHeaderRow(row Row) bool {
	return row.contains(HeaderSymbol) &&
		(row.contains(HeaderStockName) || row.contains(HeaderStockNameNoSpace))
}

// ExtractStocks returns one record per data row of the first stock table,
// skipping rows without a symbol.
func ExtractStocks(rows []Row) []model.StockRecord {
	stocks := make([]model.StockRecord, 0)
	var t TableExtractor
	for _, row := range rows {
		if stock, ok := t.Feed(row); ok {
			stocks = append(stocks, stock)
		}
	}
	return stocks
}
