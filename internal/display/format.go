package display

import (
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"StockPortfolio/internal/model"
	"StockPortfolio/internal/sheet"
)

// Placeholder is shown for cells with no value under any alias.
const Placeholder = "-"

// Status messages shown instead of data.
const (
	StatusUnconfigured = "Please provide a Google Sheet CSV URL in the config."
	StatusLoading      = "Loading Stock Data..."
)

// Trend classifies a displayed figure.
type Trend string

const (
	TrendNeutral  Trend = ""
	TrendPositive Trend = "positive"
	TrendNegative Trend = "negative"
)

// Card is one summary figure.
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Class string `json:"class"`
	Trend Trend  `json:"trend,omitempty"`
}

// Cell is one table cell. Detail carries the stock name under a symbol.
type Cell struct {
	Text   string `json:"text"`
	Detail string `json:"detail,omitempty"`
	Trend  Trend  `json:"trend,omitempty"`
}

// View is a render-ready dashboard.
type View struct {
	Status    string    `json:"status,omitempty"`
	Error     string    `json:"error,omitempty"`
	Cards     []Card    `json:"cards,omitempty"`
	Columns   []string  `json:"columns,omitempty"`
	Rows      [][]Cell  `json:"rows,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Formatter turns snapshots into views.
type Formatter struct {
	Columns        []string
	ShowSummary    bool
	ShowTable      bool
	CurrencySymbol string
	Aliases        model.AliasTable
}

// CurrencySymbol returns symbol when set, otherwise the symbol of the ISO 4217
// code, or "" for an unknown code.
func CurrencySymbol(code, symbol string) string {
	if symbol != "" {
		return symbol
	}
	if code == "" {
		return ""
	}
	if c := money.GetCurrency(strings.ToUpper(code)); c != nil {
		return c.Grapheme
	}
	return ""
}

// Build formats a snapshot. aliases overrides the formatter's table when non-nil.
func (f *Formatter) Build(snap model.Snapshot, aliases model.AliasTable) View {
	if aliases == nil {
		aliases = f.Aliases
	}
	v := View{UpdatedAt: snap.FetchedAt}
	if f.ShowSummary {
		v.Cards = f.cards(snap.Summary)
	}
	if f.ShowTable && len(snap.Stocks) > 0 {
		v.Columns = append([]string(nil), f.Columns...)
		for _, stock := range snap.Stocks {
			v.Rows = append(v.Rows, f.row(stock, aliases))
		}
	}
	return v
}

func (f *Formatter) cards(s model.SummaryRecord) []Card {
	total := model.Deref(s.ChangePercent)
	if total == "" {
		total = model.Deref(s.Change)
	}
	candidates := []Card{
		{Label: "Initial Investment", Value: f.withCurrency(model.Deref(s.InitialInvestment)), Class: "investment"},
		{Label: "Total Current Value", Value: f.withCurrency(model.Deref(s.CurrentTotalValue)), Class: "current-value"},
		{Label: "Total Change", Value: total, Class: "change", Trend: changeTrend(total)},
	}
	var cards []Card
	for _, c := range candidates {
		if c.Value != "" {
			cards = append(cards, c)
		}
	}
	return cards
}

func (f *Formatter) row(stock model.StockRecord, aliases model.AliasTable) []Cell {
	cells := make([]Cell, 0, len(f.Columns))
	for _, col := range f.Columns {
		key := sheet.NormalizeHeader(col)
		if key == "symbol" {
			name := stock["stock_name"]
			if name == "" {
				name = stock["stockname"]
			}
			cells = append(cells, Cell{Text: stock.Symbol(), Detail: name})
			continue
		}
		value := sheet.Lookup(stock, key, aliases)
		cell := Cell{Text: value, Trend: cellTrend(key, value)}
		if cell.Text == "" {
			cell.Text = Placeholder
		}
		cells = append(cells, cell)
	}
	return cells
}

func (f *Formatter) withCurrency(value string) string {
	if f.CurrencySymbol == "" || value == "" || strings.HasPrefix(value, f.CurrencySymbol) {
		return value
	}
	if _, ok := number(value); !ok {
		return value
	}
	return f.CurrencySymbol + value
}

// changeTrend colours the total change card.
func changeTrend(value string) Trend {
	switch {
	case value == "":
		return TrendNeutral
	case isZero(value):
		return TrendNeutral
	case strings.Contains(value, "-"):
		return TrendNegative
	default:
		return TrendPositive
	}
}

// cellTrend colours table cells holding percentages or change, P&L and
// profit figures. Other columns stay neutral unless they carry a minus sign.
func cellTrend(key, value string) Trend {
	if value == "" || isZero(value) {
		return TrendNeutral
	}
	if strings.Contains(value, "-") {
		return TrendNegative
	}
	if strings.Contains(value, "%") ||
		strings.Contains(key, "change") || strings.Contains(key, "p_l") || strings.Contains(key, "profit") {
		return TrendPositive
	}
	return TrendNeutral
}

// number parses a display figure such as "+1,00,000", "₹5,500.50" or "-3.3%".
func number(value string) (decimal.Decimal, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+':
			return r
		case r == ',' || r == '%' || r == ' ' || r == '\u00a0' || r == '$':
			return -1
		case r > 127:
			// currency signs
			return -1
		default:
			return 'x'
		}
	}, value)
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(cleaned, "+"))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func isZero(value string) bool {
	d, ok := number(value)
	return ok && d.IsZero()
}
