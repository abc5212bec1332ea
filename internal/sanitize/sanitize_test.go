package sanitize

import (
	"testing"
	"time"

	"github.com/Hummusful/kitzer/internal/feed"
)

func TestEscapeText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{`a "quote" & an 'apostrophe'`, "a &quot;quote&quot; &amp; an &#39;apostrophe&#39;"},
		{"AC&amp;DC", "AC&amp;DC"},
		{"a&nbsp;&nbsp;b", "a b"},
		{"  spaced   out  ", "spaced out"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := EscapeText(tt.input); got != tt.want {
			t.Errorf("EscapeText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"https://example.com/path", true},
		{"http://example.com", true},
		{"javascript:alert(1)", false},
		{"data:text/html,hi", false},
		{"ftp://example.com", false},
		{"/relative/path", false},
		{"", false},
		{"not a url at all ://", false},
	}

	for _, tt := range tests {
		got, ok := SafeURL(tt.input)
		if ok != tt.ok {
			t.Errorf("SafeURL(%q) ok = %v, want %v", tt.input, ok, tt.ok)
		}
		if ok && got == "" {
			t.Errorf("SafeURL(%q): accepted but empty", tt.input)
		}
	}
}

func TestUpgradeImageURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"//cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"http://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := UpgradeImageURL(tt.input); got != tt.want {
			t.Errorf("UpgradeImageURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestImageFromHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`<p>text <img src="https://x.com/a.jpg" alt=""> more</p>`, "https://x.com/a.jpg"},
		{`<img src="//x.com/a.jpg"><img src="https://x.com/b.jpg">`, "//x.com/a.jpg"},
		{"no image here", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ImageFromHTML(tt.input); got != tt.want {
			t.Errorf("ImageFromHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"plain", "plain"},
		{"<div>  extra   space </div>", "extra space"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripHTML(tt.input); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"he", "HE"},
		{"HE", "HE"},
		{"hebrew", "HE"},
		{"he-IL", "HE"},
		{"en", "EN"},
		{"EN-us", "EN"},
		{"fr", "EN"},
		{"", "EN"},
		{"  He ", "HE"},
	}

	for _, tt := range tests {
		if got := NormalizeLanguage(tt.input); got != tt.want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeRejectsEmptyItems(t *testing.T) {
	empties := []feed.RawItem{
		{},
		{Headline: "   ", Summary: ""},
		{Headline: "", Summary: "<p>  </p>", Link: "https://x.com/1"},
	}
	for i, raw := range empties {
		if _, ok := Sanitize(raw); ok {
			t.Errorf("item %d: expected rejection", i)
		}
	}

	if _, ok := Sanitize(feed.RawItem{Summary: "has a summary"}); !ok {
		t.Error("item with only a summary should survive")
	}
}

func TestSanitizeRepairs(t *testing.T) {
	it, ok := Sanitize(feed.RawItem{
		Headline: "New &amp; Improved",
		Summary:  `Great stuff <img src="http://img.example.com/c.jpg"> indeed`,
		Link:     "https://example.com/story",
		Date:     "2024-06-01",
		Language: "hebrew",
		Genre:    "rock",
	})
	if !ok {
		t.Fatal("expected item to survive")
	}
	if it.Headline != "New & Improved" {
		t.Errorf("headline = %q", it.Headline)
	}
	if it.Summary != "Great stuff indeed" {
		t.Errorf("summary = %q", it.Summary)
	}
	if it.Cover != "https://img.example.com/c.jpg" {
		t.Errorf("cover = %q (want upgraded fallback from summary)", it.Cover)
	}
	if it.Language != "HE" {
		t.Errorf("language = %q", it.Language)
	}
	if len(it.Genres) != 1 || it.Genres[0] != "rock" {
		t.Errorf("genres = %v", it.Genres)
	}
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !it.Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", it.Timestamp, want)
	}
}

func TestSanitizeUnsafeLink(t *testing.T) {
	it, ok := Sanitize(feed.RawItem{
		Headline: "Title",
		Link:     "javascript:alert(1)",
	})
	if !ok {
		t.Fatal("expected item to survive")
	}
	if it.Link != "" {
		t.Errorf("unsafe link survived: %q", it.Link)
	}
	if it.Source != "Unknown" {
		t.Errorf("source = %q, want Unknown", it.Source)
	}
}

func TestSanitizeSourceFromLink(t *testing.T) {
	it, ok := Sanitize(feed.RawItem{
		Headline: "Title",
		Link:     "https://www.example.com/x",
	})
	if !ok {
		t.Fatal("expected item to survive")
	}
	if it.Source != "example.com" {
		t.Errorf("source = %q, want example.com", it.Source)
	}
}
