package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Hummusful/kitzer/internal/feed"
	"github.com/Hummusful/kitzer/internal/when"
	"github.com/charmbracelet/lipgloss"
)

const maxGenreTags = 3

// renderCard draws a single feed item as a self-contained card.
func renderCard(it feed.Item, selected bool, width int, now time.Time) string {
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	badge := langBadgeStyle.Render(it.Language)
	source := sourceTagStyle.Render(it.Source)
	date := dateLabelStyle.Render(when.Label(it.Timestamp, it.Language, now))
	top := lipgloss.JoinHorizontal(lipgloss.Top, badge, " ", source, "  ", date)

	title := titleStyle
	if it.Link != "" {
		title = titleLinkedStyle
	}
	headline := title.Width(inner).Render(it.Headline)

	var lines []string
	lines = append(lines, top, headline)

	if tags := genreTags(it.Genres); tags != "" {
		lines = append(lines, genreTagStyle.Render(tags))
	}
	if it.Summary != "" {
		lines = append(lines, summaryStyle.Width(inner).Render(it.Summary))
	}
	for _, row := range metaRows(it.Meta) {
		lines = append(lines, metaRowStyle.Render(row))
	}
	if it.Cover != "" {
		lines = append(lines, coverStyle.Render("cover: "+it.Cover))
	}

	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func genreTags(genres []string) string {
	if len(genres) == 0 {
		return ""
	}
	n := len(genres)
	if n > maxGenreTags {
		n = maxGenreTags
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString("#" + genres[i])
	}
	return b.String()
}

func metaRows(m *feed.Meta) []string {
	if m == nil {
		return nil
	}
	var rows []string
	if m.Type != "" || m.Label != "" {
		parts := make([]string, 0, 2)
		if m.Type != "" {
			parts = append(parts, m.Type)
		}
		if m.Label != "" {
			parts = append(parts, m.Label)
		}
		rows = append(rows, strings.Join(parts, " · "))
	}
	if m.Release != "" {
		rows = append(rows, "release: "+m.Release)
	}
	if m.Tracks > 0 {
		rows = append(rows, fmt.Sprintf("tracks: %d", m.Tracks))
	}
	return rows
}
