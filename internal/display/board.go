package display

import (
	"context"
	"sync"
	"time"

	"StockPortfolio/internal/model"
)

// BoardState is a copy of what the dashboard currently shows.
type BoardState struct {
	Configured  bool             `json:"configured"`
	Loaded      bool             `json:"loaded"`
	Snapshot    *model.Snapshot  `json:"snapshot"`
	Aliases     model.AliasTable `json:"-"`
	RequestID   string           `json:"requestId,omitempty"`
	LastError   string           `json:"lastError,omitempty"`
	LastErrorAt time.Time        `json:"lastErrorAt,omitzero"`
}

// Board keeps the last good snapshot. A failed cycle records its message but
// leaves the displayed snapshot untouched.
type Board struct {
	mu    sync.RWMutex
	state BoardState
}

// NewBoard creates a board. configured is false when no sheet URL is set.
func NewBoard(configured bool) *Board {
	return &Board{state: BoardState{Configured: configured}}
}

// Present applies a cycle outcome.
func (b *Board) Present(_ context.Context, out model.Outcome) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch o := out.(type) {
	case *model.FetchSuccess:
		snap := o.Snapshot
		b.state.Snapshot = &snap
		b.state.Aliases = o.Aliases
		b.state.Loaded = true
		b.state.RequestID = o.RequestID
		b.state.LastError = ""
		b.state.LastErrorAt = time.Time{}
	case *model.FetchFailure:
		b.state.LastError = o.Message
		b.state.LastErrorAt = time.Now()
	}
}

// State returns a copy of the board state.
func (b *Board) State() BoardState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// View formats the current state.
func (b *Board) View(f *Formatter) View {
	st := b.State()
	switch {
	case !st.Configured:
		return View{Status: StatusUnconfigured}
	case !st.Loaded:
		return View{Status: StatusLoading, Error: st.LastError}
	}
	v := f.Build(*st.Snapshot, st.Aliases)
	v.Error = st.LastError
	return v
}
