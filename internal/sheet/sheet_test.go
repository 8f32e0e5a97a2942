package sheet

import (
	"errors"
	"testing"

	"StockPortfolio/internal/model"
)

func rowsOf(cells ...[]string) []Row {
	rows := make([]Row, len(cells))
	for i, c := range cells {
		rows[i] = c
	}
	return rows
}

func TestProcess_ReferenceSheet(t *testing.T) {
	rows := rowsOf(
		[]string{"Initial Investment", "", "50000"},
		[]string{"Current Total Value", "", "55500"},
		[]string{"Change", "", "5500", "11%"},
		[]string{"Symbol", "Stock Name"},
		[]string{"TCS", "Tata Consultancy", "3200", "3400", "+6.25%", "+200"},
	)
	snap := Process(rows)

	want := map[string]*string{
		"initialInvestment": snap.Summary.InitialInvestment,
		"currentTotalValue": snap.Summary.CurrentTotalValue,
		"change":            snap.Summary.Change,
		"changePercent":     snap.Summary.ChangePercent,
	}
	expected := map[string]string{
		"initialInvestment": "50000",
		"currentTotalValue": "55500",
		"change":            "5500",
		"changePercent":     "11%",
	}
	for field, v := range want {
		if v == nil || *v != expected[field] {
			t.Errorf("%s: expected %q, got %v", field, expected[field], model.Deref(v))
		}
	}

	if len(snap.Stocks) != 1 {
		t.Fatalf("expected 1 stock, got %d", len(snap.Stocks))
	}
	if snap.Stocks[0]["symbol"] != "TCS" || snap.Stocks[0]["stock_name"] != "Tata Consultancy" {
		t.Errorf("unexpected stock %v", snap.Stocks[0])
	}
}

func TestParse_FullSheet(t *testing.T) {
	text := `Portfolio,,,,,
Initial Investment,,"1,00,000",,,
Current Total Value,,"1,12,500",,,
Change,,"12,500",12.5%,,
,,,,,
Symbol,Stock Name,Avg Price,Current,Change %,P& L
TCS,Tata Consultancy,3200,3400,+6.25%,+200
INFY,Infosys,1500,1450,-3.33%,-50
,Cash,,,,
`
	snap, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := model.Deref(snap.Summary.InitialInvestment); got != "1,00,000" {
		t.Errorf("initial investment: got %q", got)
	}
	if len(snap.Stocks) != 2 {
		t.Fatalf("expected 2 stocks, got %d", len(snap.Stocks))
	}
	infy := snap.Stocks[1]
	checks := map[string]string{
		"symbol": "INFY", "stock_name": "Infosys", "avg_price": "1500",
		"current": "1450", "change": "-3.33%", "p_l": "-50",
	}
	for k, v := range checks {
		if infy[k] != v {
			t.Errorf("INFY[%s]: expected %q, got %q", k, v, infy[k])
		}
	}
}

func TestParse_MalformedCSV(t *testing.T) {
	snap, err := Parse("Symbol,Stock Name\nTCS,\"Tata\n")
	if err == nil {
		t.Fatal("expected parse error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("expected *ParseError, got %T", err)
	}
	if snap.Stocks != nil || !snap.Summary.IsEmpty() {
		t.Error("expected zero snapshot on parse failure")
	}
}

func TestParse_UnrecognisedSheetIsEmptyNotError(t *testing.T) {
	snap, err := Parse("foo,bar\n1,2\n")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !snap.Summary.IsEmpty() {
		t.Error("expected all summary fields nil")
	}
	if snap.Stocks == nil || len(snap.Stocks) != 0 {
		t.Errorf("expected empty non-nil stocks, got %v", snap.Stocks)
	}
}
