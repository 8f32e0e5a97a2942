package recorder

import (
	"time"

	"StockPortfolio/internal/model"
)

// Cycle statuses stored in fetch_cycles.status.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// CycleEvent holds the audit data for one refresh cycle.
type CycleEvent struct {
	RequestID      string
	At             time.Time
	Source         string
	Status         string // "ok" or "failed"
	StockCount     int
	SummaryPresent bool
	Message        string
	Duration       time.Duration
}

// NewCycleEvent describes an outcome produced from source.
func NewCycleEvent(out model.Outcome, source string, at time.Time, elapsed time.Duration) *CycleEvent {
	evt := &CycleEvent{
		RequestID: out.Request(),
		At:        at,
		Source:    source,
		Duration:  elapsed,
	}
	switch o := out.(type) {
	case *model.FetchSuccess:
		evt.Status = StatusOK
		evt.StockCount = len(o.Snapshot.Stocks)
		evt.SummaryPresent = !o.Snapshot.Summary.IsEmpty()
	case *model.FetchFailure:
		evt.Status = StatusFailed
		evt.Message = o.Message
	}
	return evt
}

// Recorder keeps an audit log of refresh cycles. It is never read back to
// rebuild dashboard state.
type Recorder interface {
	RecordCycle(evt *CycleEvent) error
	Close() error
}
