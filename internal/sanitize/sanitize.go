// Package sanitize validates and repairs raw feed records before they reach
// the pipeline: markup neutralization, URL safety, image URL upgrades and
// language normalization.
package sanitize

import (
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Hummusful/kitzer/internal/feed"
	"github.com/Hummusful/kitzer/internal/when"
)

// escapeReplacer is the explicit entity table. Escaping goes through this
// table only, with no DOM round-trip, so it stays testable anywhere.
var escapeReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeText neutralizes markup in s. Entities are decoded and whitespace is
// collapsed first, so visual duplication like "&nbsp;&nbsp;" does not survive
// the round trip.
func EscapeText(s string) string {
	return escapeReplacer.Replace(CleanText(s))
}

// CleanText decodes HTML entities and collapses redundant whitespace.
func CleanText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

// SafeURL parses href and accepts it only when the scheme is http or https.
// Anything else (javascript:, data:, relative paths) is rejected so it
// renders as a non-link.
func SafeURL(href string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Host == "" {
		return "", false
	}
	return u.String(), true
}

// UpgradeImageURL rewrites protocol-relative and plain-http image URLs to
// https.
func UpgradeImageURL(raw string) string {
	v := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(v, "//"):
		return "https:" + v
	case strings.HasPrefix(v, "http://"):
		return "https://" + strings.TrimPrefix(v, "http://")
	default:
		return v
	}
}

// ImageFromHTML extracts the src of the first <img> in an HTML fragment.
// Used as a cover fallback; it must run before the fragment is stripped for
// display.
func ImageFromHTML(fragment string) string {
	if !strings.Contains(fragment, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return strings.TrimSpace(src)
}

// StripHTML reduces an HTML fragment to its text content with collapsed
// whitespace.
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return CleanText(fragment)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// NormalizeLanguage maps any raw language value onto the two-letter set
// {HE, EN}. Only Hebrew and English are supported; anything unrecognized is
// English.
func NormalizeLanguage(v string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(v)), "he") {
		return "HE"
	}
	return "EN"
}

// Sanitize validates and repairs one raw record. ok is false when the item
// is meaningless (neither headline nor summary after trimming); such items
// are dropped silently, never surfaced as errors.
func Sanitize(raw feed.RawItem) (feed.Item, bool) {
	headline := CleanText(raw.Headline)

	// Cover fallback has to happen before the summary is stripped.
	cover := strings.TrimSpace(raw.Cover)
	if cover == "" {
		cover = ImageFromHTML(raw.Summary)
	}
	summary := StripHTML(raw.Summary)

	if headline == "" && summary == "" {
		return feed.Item{}, false
	}

	link := ""
	if u, ok := SafeURL(raw.Link); ok {
		link = u
	}

	source := strings.TrimSpace(raw.Source)
	if source == "" {
		source = sourceFromLink(link)
	}

	genres := make([]string, 0, len(raw.Genres)+1)
	for _, g := range raw.Genres {
		if g = CleanText(g); g != "" {
			genres = append(genres, g)
		}
	}
	if len(genres) == 0 {
		if g := CleanText(raw.Genre); g != "" {
			genres = append(genres, g)
		}
	}

	alt := CleanText(raw.AltText)
	if alt == "" {
		alt = headline
	}

	ts, _ := when.Parse(raw.Date)

	return feed.Item{
		Source:    source,
		Link:      link,
		Headline:  headline,
		Summary:   summary,
		Timestamp: ts,
		Language:  NormalizeLanguage(raw.Language),
		Genres:    genres,
		Cover:     UpgradeImageURL(cover),
		AltText:   alt,
		Meta:      raw.Meta,
	}, true
}

// sourceFromLink derives a publisher label from the link host when the feed
// record carries none.
func sourceFromLink(link string) string {
	if link == "" {
		return "Unknown"
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return "Unknown"
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
