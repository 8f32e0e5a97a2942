package display

import (
	"fmt"
	"strings"
)

// Markdown renders the view as a GitHub-flavoured markdown document.
func (v View) Markdown() string {
	var b strings.Builder

	if v.Status != "" {
		b.WriteString("_" + escape(v.Status) + "_\n")
	}
	if v.Error != "" {
		b.WriteString(fmt.Sprintf("\n> last refresh failed: %s\n", escape(v.Error)))
	}

	if len(v.Cards) > 0 {
		b.WriteString("\n")
		for _, c := range v.Cards {
			b.WriteString(fmt.Sprintf("- **%s**: %s\n", c.Label, marked(c.Value, c.Trend)))
		}
	}

	if len(v.Rows) > 0 {
		b.WriteString("\n| " + strings.Join(escapeAll(v.Columns), " | ") + " |\n")
		b.WriteString("|" + strings.Repeat(" --- |", len(v.Columns)) + "\n")
		for _, row := range v.Rows {
			cells := make([]string, len(row))
			for i, c := range row {
				text := marked(c.Text, c.Trend)
				if c.Detail != "" {
					text = fmt.Sprintf("**%s** %s", escape(c.Text), escape(c.Detail))
				}
				cells[i] = text
			}
			b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		}
	}

	if !v.UpdatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("\n_updated %s_\n", v.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}

func marked(text string, t Trend) string {
	switch t {
	case TrendPositive:
		return "▲ " + escape(text)
	case TrendNegative:
		return "▼ " + escape(text)
	default:
		return escape(text)
	}
}

// Line breaks would end a table row, so quoted multi-line cells are folded.
var mdEscaper = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`", "<", "&lt;", ">", "&gt;")

func escape(s string) string { return mdEscaper.Replace(s) }

func escapeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = escape(s)
	}
	return out
}
