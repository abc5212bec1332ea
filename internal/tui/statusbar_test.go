package tui

import (
	"strings"
	"testing"

	"github.com/Hummusful/kitzer/internal/genre"
	"github.com/charmbracelet/lipgloss"
)

func TestStatusBarPadsByCellWidth(t *testing.T) {
	f := genre.Filter{Genre: genre.Electronic, Lang: "HE"}
	bar := renderStatusBar(12, 50, f, true, 120)

	// The separators are multibyte; padding by byte length would overflow
	// the width and force a wrap.
	if strings.Contains(bar, "\n") {
		t.Fatalf("status bar wrapped:\n%s", bar)
	}
	if got := lipgloss.Width(bar); got != 120 {
		t.Errorf("status bar width = %d, want 120", got)
	}
}
