package notifier

import (
	"context"
	"strings"

	"StockPortfolio/internal/display"
	"StockPortfolio/internal/model"
)

const commandHelp = "Available commands:\n• /portfolio: current summary\n• /refresh: fetch the sheet now"

// Commands answers chat commands from the dashboard board.
type Commands struct {
	Board     *display.Board
	Formatter *display.Formatter
	// Refresh runs one cycle immediately; nil disables /refresh.
	Refresh func(ctx context.Context) model.Outcome
}

// Handle returns the reply to command.
func (c *Commands) Handle(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return commandHelp
	}
	name, _, _ := strings.Cut(fields[0], "@")
	switch strings.ToLower(name) {
	case "/portfolio", "/status":
		return c.status()
	case "/refresh":
		if c.Refresh == nil {
			return "Refresh is not available: no sheet URL configured."
		}
		switch o := c.Refresh(ctx).(type) {
		case *model.FetchSuccess:
			return FormatSummary(c.Formatter.Build(o.Snapshot, o.Aliases), len(o.Snapshot.Stocks))
		case *model.FetchFailure:
			return FormatFailure(o.Message)
		}
		return ""
	default:
		return commandHelp
	}
}

func (c *Commands) status() string {
	v := c.Board.View(c.Formatter)
	if v.Status != "" {
		if v.Error != "" {
			return FormatFailure(v.Error)
		}
		return v.Status
	}
	var stocks int
	if st := c.Board.State(); st.Snapshot != nil {
		stocks = len(st.Snapshot.Stocks)
	}
	return FormatSummary(v, stocks)
}
