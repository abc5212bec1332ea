package tui

import (
	"fmt"
	"strings"

	"github.com/Hummusful/kitzer/internal/genre"
	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar shows how much of the feed is visible, the active filter
// and the key hints.
func renderStatusBar(visible, total int, f genre.Filter, fromCache bool, width int) string {
	left := fmt.Sprintf(" showing %d of %d · %s", visible, total, f.Genre.Label())
	if fromCache {
		left += " · cached"
	}
	hints := "1-4 genre · j/k move · o open · r refresh · d debug · q quit "

	pad := width - lipgloss.Width(left) - lipgloss.Width(hints)
	if pad < 1 {
		pad = 1
	}
	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", pad) + hints)
}
