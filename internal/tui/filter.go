package tui

import (
	"strings"

	"github.com/Hummusful/kitzer/internal/genre"
)

// renderTabs draws the genre selector as a row of numbered tabs.
func renderTabs(active genre.Genre) string {
	var parts []string
	for i, g := range genre.AllGenres() {
		label := g.Label()
		tab := tabInactiveStyle.Render(label)
		if g == active {
			tab = tabActiveStyle.Render(label)
		}
		parts = append(parts, tabSeparatorStyle.Render(keyHint(i+1))+tab)
	}
	return " " + strings.Join(parts, " ")
}

func keyHint(n int) string {
	return string(rune('0'+n)) + ":"
}

// genreForKey maps number keys 1-4 onto the genre tabs.
func genreForKey(key string) (genre.Genre, bool) {
	switch key {
	case "1":
		return genre.All, true
	case "2":
		return genre.Hebrew, true
	case "3":
		return genre.Electronic, true
	case "4":
		return genre.International, true
	}
	return "", false
}
