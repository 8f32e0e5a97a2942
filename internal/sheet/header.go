package sheet

import "strings"

// NormalizeHeader maps a free-text column header to its canonical key:
// lowercase, without parentheses or percent signs, every run of characters
// outside [a-z0-9] collapsed to a single underscore, no leading or trailing
// underscore.
//
//	"Change %"  -> "change"
//	"P& L"      -> "p_l"
//	"Avg Price" -> "avg_price"
func NormalizeHeader(header string) string {
	var b strings.Builder
	b.Grow(len(header))

	sep := false
	for _, r := range strings.ToLower(header) {
		switch {
		case r == '(' || r == ')' || r == '%':
			// dropped before separators are collapsed
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			sep = false
			b.WriteRune(r)
		default:
			sep = true
		}
	}
	return b.String()
}
