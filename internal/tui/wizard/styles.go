package wizard

import (
	"strings"

	"github.com/jothom/inquiry/internal/tui/theme"
)

// Modal sizing
const (
	minModalWidth = 60
	maxModalWidth = 100
)

// renderHintBar renders a hint bar with the given key-description pairs.
// Example: renderHintBar("↑↓", "navigate", "enter", "select", "esc", "back")
// Returns: "↑↓ navigate • enter select • esc back"
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + s.HintSeparator.Render("•") + " ")
		}
		b.WriteString(s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1]))
	}
	return b.String()
}

// renderError renders an inline validation or load error.
func renderError(msg string) string {
	if msg == "" {
		return ""
	}
	return theme.Current().S().ErrorText.Render("✗ " + msg)
}

// truncate shortens s to width runes, ending with "..." when cut.
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
