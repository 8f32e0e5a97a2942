package main

import (
	"strings"
	"testing"
	"time"

	"StockPortfolio/internal/recorder"
)

func TestHistoryMarkdown(t *testing.T) {
	if got := historyMarkdown(nil); !strings.Contains(got, "no cycles") {
		t.Errorf("unexpected empty history %q", got)
	}

	md := historyMarkdown([]recorder.CycleEvent{{
		At:         time.Date(2025, 3, 1, 9, 30, 0, 0, time.Local),
		Status:     recorder.StatusFailed,
		Message:    "status 500 | upstream",
		Duration:   1500 * time.Millisecond,
		StockCount: 0,
	}})
	if !strings.Contains(md, "| 2025-03-01 09:30:00 | failed | 0 | no | 1.5s | status 500 \\| upstream |") {
		t.Errorf("unexpected history row:\n%s", md)
	}
}

func TestCheckFormat(t *testing.T) {
	for _, f := range []string{"markdown", "term", "json"} {
		if err := checkFormat(f); err != nil {
			t.Errorf("checkFormat(%q): %v", f, err)
		}
	}
	if err := checkFormat("yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
