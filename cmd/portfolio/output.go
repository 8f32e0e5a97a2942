package main

import (
	"encoding/json"
	"fmt"
	"io"

	"StockPortfolio/internal/display"
	"StockPortfolio/internal/model"
)

const (
	formatMarkdown = "markdown"
	formatTerm     = "term"
	formatJSON     = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatMarkdown, formatTerm, formatJSON:
		return nil
	}
	return fmt.Errorf("unknown format %q (want markdown, term or json)", format)
}

// writeSnapshot prints snap as raw JSON, a markdown dashboard or a rendered terminal dashboard.
func writeSnapshot(w io.Writer, format string, snap model.Snapshot, f *display.Formatter, aliases model.AliasTable) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case formatTerm:
		out, err := display.RenderTerminal(f.Build(snap, aliases).Markdown(), 0)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		_, err := io.WriteString(w, f.Build(snap, aliases).Markdown())
		return err
	}
}
