package model

import "time"

// SummaryRecord holds the portfolio totals found next to the summary anchors.
// A nil field means the anchor never appeared in the sheet.
type SummaryRecord struct {
	InitialInvestment *string `json:"initialInvestment"`
	CurrentTotalValue *string `json:"currentTotalValue"`
	Change            *string `json:"change"`
	ChangePercent     *string `json:"changePercent"`
}

// IsEmpty reports whether no summary anchor was matched.
func (s SummaryRecord) IsEmpty() bool {
	return s.InitialInvestment == nil && s.CurrentTotalValue == nil &&
		s.Change == nil && s.ChangePercent == nil
}

// StockRecord maps a canonical header key to the raw cell value of one table row.
type StockRecord map[string]string

// Symbol returns the row's symbol cell, or "" when the sheet has none.
func (r StockRecord) Symbol() string {
	return r["symbol"]
}

// Snapshot is the result of one successful fetch and parse cycle.
type Snapshot struct {
	Summary   SummaryRecord `json:"summary"`
	Stocks    []StockRecord `json:"stocks"`
	Source    string        `json:"source,omitempty"`
	FetchedAt time.Time     `json:"fetchedAt,omitzero"`
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// Deref returns the pointed-to string, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
