package notifier

import (
	"fmt"
	"html"
	"strings"

	"StockPortfolio/internal/display"
)

// FormatSummary formats the summary cards of a view into a Telegram message.
func FormatSummary(v display.View, stocks int) string {
	var b strings.Builder
	b.WriteString("📊 <b>Portfolio update</b>\n\n")

	if len(v.Cards) == 0 {
		b.WriteString("No summary found in the sheet.\n")
	}
	for _, c := range v.Cards {
		b.WriteString(fmt.Sprintf("%s%s: <b>%s</b>\n", trendIcon(c.Trend), html.EscapeString(c.Label), html.EscapeString(c.Value)))
	}

	b.WriteString(fmt.Sprintf("\nHoldings: %d\n", stocks))
	return b.String()
}

// FormatFailure formats a refresh failure alert.
func FormatFailure(message string) string {
	return fmt.Sprintf("❌ <b>Portfolio refresh failed</b>\n\n%s", html.EscapeString(message))
}

func trendIcon(t display.Trend) string {
	switch t {
	case display.TrendPositive:
		return "🟢 "
	case display.TrendNegative:
		return "🔴 "
	default:
		return ""
	}
}
