package model

// FetchRequest is the configuration of a single refresh cycle.
type FetchRequest struct {
	ID       string
	SheetURL string
	Aliases  AliasTable
}

// Outcome is the result of a refresh cycle: either *FetchSuccess or *FetchFailure.
type Outcome interface {
	outcome()
	Request() string
}

// FetchSuccess carries a freshly built snapshot and the alias table of the
// request that produced it, for presenters resolving renamed columns.
type FetchSuccess struct {
	RequestID string
	Snapshot  Snapshot
	Aliases   AliasTable
}

// FetchFailure carries a human readable reason the cycle produced no snapshot.
type FetchFailure struct {
	RequestID string
	Message   string
	Err       error
}

func (*FetchSuccess) outcome() {}
func (*FetchFailure) outcome() {}

func (s *FetchSuccess) Request() string { return s.RequestID }
func (f *FetchFailure) Request() string { return f.RequestID }

// Unwrap exposes the underlying fetch or parse error.
func (f *FetchFailure) Unwrap() error { return f.Err }

func (f *FetchFailure) Error() string { return f.Message }
