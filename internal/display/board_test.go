package display

import (
	"context"
	"errors"
	"testing"

	"StockPortfolio/internal/model"
)

func TestBoard_Unconfigured(t *testing.T) {
	b := NewBoard(false)
	if v := b.View(newTestFormatter()); v.Status != StatusUnconfigured {
		t.Errorf("expected unconfigured status, got %q", v.Status)
	}
}

func TestBoard_LoadingUntilFirstSuccess(t *testing.T) {
	b := NewBoard(true)
	f := newTestFormatter()
	if v := b.View(f); v.Status != StatusLoading {
		t.Errorf("expected loading status, got %q", v.Status)
	}

	b.Present(context.Background(), &model.FetchFailure{RequestID: "r0", Message: "status 500"})
	v := b.View(f)
	if v.Status != StatusLoading || v.Error != "status 500" {
		t.Errorf("expected loading with error, got %+v", v)
	}
}

func TestBoard_KeepsLastGoodSnapshotOnFailure(t *testing.T) {
	b := NewBoard(true)
	ctx := context.Background()
	b.Present(ctx, &model.FetchSuccess{RequestID: "r1", Snapshot: testSnapshot()})
	b.Present(ctx, &model.FetchFailure{RequestID: "r2", Message: "timeout", Err: errors.New("timeout")})

	st := b.State()
	if !st.Loaded || st.Snapshot == nil || len(st.Snapshot.Stocks) != 3 {
		t.Fatalf("expected previous snapshot retained, got %+v", st)
	}
	if st.RequestID != "r1" || st.LastError != "timeout" {
		t.Errorf("unexpected request/error %q/%q", st.RequestID, st.LastError)
	}

	v := b.View(newTestFormatter())
	if len(v.Rows) != 3 || v.Error != "timeout" {
		t.Errorf("expected rows and error in view, got %+v", v)
	}
}

func TestBoard_SuccessReplacesWholesale(t *testing.T) {
	b := NewBoard(true)
	ctx := context.Background()
	b.Present(ctx, &model.FetchSuccess{RequestID: "r1", Snapshot: testSnapshot()})
	b.Present(ctx, &model.FetchFailure{RequestID: "r2", Message: "boom"})
	b.Present(ctx, &model.FetchSuccess{RequestID: "r3", Snapshot: model.Snapshot{Stocks: []model.StockRecord{}}})

	st := b.State()
	if len(st.Snapshot.Stocks) != 0 || !st.Snapshot.Summary.IsEmpty() {
		t.Errorf("expected snapshot replaced, got %+v", st.Snapshot)
	}
	if st.LastError != "" {
		t.Errorf("expected error cleared, got %q", st.LastError)
	}
}
