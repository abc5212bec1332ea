// Package genre models the feed's filter dimensions: the genre selection,
// the interface language and the day window.
package genre

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Hummusful/kitzer/internal/feed"
)

// Genre is one of the feed's filter tabs.
type Genre string

const (
	All           Genre = "all"
	Hebrew        Genre = "hebrew"
	Electronic    Genre = "electronic"
	International Genre = "international"
)

// AllGenres returns the tabs in canonical display order.
func AllGenres() []Genre {
	return []Genre{All, Hebrew, Electronic, International}
}

// Resolve maps a CLI value to a Genre, case-insensitively.
func Resolve(v string) (Genre, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return All, nil
	}
	for _, g := range AllGenres() {
		if string(g) == v {
			return g, nil
		}
	}
	valid := make([]string, 0, len(AllGenres()))
	for _, g := range AllGenres() {
		valid = append(valid, string(g))
	}
	return "", fmt.Errorf("unknown genre %q (valid: %s)", v, strings.Join(valid, ", "))
}

// Label is the tab caption for g.
func (g Genre) Label() string {
	switch g {
	case Hebrew:
		return "Hebrew"
	case Electronic:
		return "Electronic"
	case International:
		return "International"
	default:
		return "All"
	}
}

// Filter is the active selection. It drives both the outbound query and the
// cache key, and it round-trips through CLI flags the way the web client
// round-trips through its query string.
type Filter struct {
	Genre Genre
	Lang  string // "HE" or "EN", interface language for date labels
	Days  int    // 0 = no day window
}

// Key is the cache identity of the filter state.
func (f Filter) Key() string {
	g := f.Genre
	if g == "" {
		g = All
	}
	return strings.ToLower(fmt.Sprintf("%s|%s|%d", g, f.Lang, f.Days))
}

// Query renders the filter as outbound request parameters. "all" is omitted,
// matching the aggregator's contract.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.Genre != "" && f.Genre != All {
		q.Set("genre", string(f.Genre))
	}
	if f.Lang != "" {
		q.Set("lang", strings.ToLower(f.Lang))
	}
	if f.Days > 0 {
		q.Set("days", strconv.Itoa(f.Days))
	}
	return q
}

// Matches reports whether a sanitized item belongs under the filter's genre
// tab. This is the client-side leg of filtering; the server applies the same
// selection when the genre query parameter is honored.
func (f Filter) Matches(it feed.Item) bool {
	switch f.Genre {
	case Hebrew:
		return it.Language == "HE"
	case International:
		return it.Language == "EN"
	case Electronic:
		for _, g := range it.Genres {
			l := strings.ToLower(g)
			if strings.Contains(l, "electro") || strings.Contains(l, "techno") || strings.Contains(l, "house") {
				return true
			}
		}
		return false
	default:
		return true
	}
}
