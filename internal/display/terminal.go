package display

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/phuslu/log"

	"StockPortfolio/internal/model"
)

// RenderTerminal renders markdown for an ANSI terminal.
func RenderTerminal(markdown string, width int) (string, error) {
	r, err := newTermRenderer(width)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}

func newTermRenderer(width int) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("create terminal renderer: %w", err)
	}
	return r, nil
}

// TerminalPresenter prints every new snapshot to a terminal.
type TerminalPresenter struct {
	mu        sync.Mutex
	out       io.Writer
	formatter *Formatter
	renderer  *glamour.TermRenderer
}

// NewTerminalPresenter creates a presenter writing to out.
func NewTerminalPresenter(out io.Writer, f *Formatter, width int) (*TerminalPresenter, error) {
	r, err := newTermRenderer(width)
	if err != nil {
		return nil, err
	}
	return &TerminalPresenter{out: out, formatter: f, renderer: r}, nil
}

// Present prints successful snapshots; failures are left to the log so the
// last printed snapshot stays on screen.
func (p *TerminalPresenter) Present(_ context.Context, out model.Outcome) {
	ok, isOK := out.(*model.FetchSuccess)
	if !isOK {
		return
	}
	md := p.formatter.Build(ok.Snapshot, ok.Aliases).Markdown()

	p.mu.Lock()
	defer p.mu.Unlock()
	rendered, err := p.renderer.Render(md)
	if err != nil {
		log.Warn().Err(err).Msg("terminal render failed, printing markdown")
		rendered = md
	}
	if _, err := io.WriteString(p.out, rendered); err != nil {
		log.Error().Err(err).Msg("write terminal output")
	}
}
