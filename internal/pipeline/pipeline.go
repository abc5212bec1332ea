// Package pipeline turns raw feed records into the ordered, deduplicated,
// source-balanced list the renderer consumes.
package pipeline

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/Hummusful/kitzer/internal/feed"
	"github.com/Hummusful/kitzer/internal/sanitize"
)

// Options tune one pipeline run.
type Options struct {
	// MaxAge drops items older than the window before dedupe grouping, so
	// an old duplicate cannot suppress a fresh one by occupying the key
	// first. Zero disables the window.
	MaxAge time.Duration

	// SourceCap is the per-source representation limit. Zero or negative
	// disables balancing.
	SourceCap int

	// BlockedTerms excludes items whose source name contains a term.
	BlockedTerms []string
	// BlockedDomains excludes items whose link host equals or is a
	// subdomain of a domain.
	BlockedDomains []string

	// Now anchors the max-age window; zero means time.Now.
	Now time.Time
}

// Run sanitizes, deduplicates, balances and orders raw records. Invalid
// items reduce the result set silently.
func Run(raws []feed.RawItem, opts Options) []feed.Item {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	items := make([]feed.Item, 0, len(raws))
	for _, raw := range raws {
		it, ok := sanitize.Sanitize(raw)
		if !ok {
			continue
		}
		if opts.MaxAge > 0 && !it.Timestamp.IsZero() && now.Sub(it.Timestamp) > opts.MaxAge {
			continue
		}
		if Blocked(it, opts.BlockedTerms, opts.BlockedDomains) {
			continue
		}
		items = append(items, it)
	}

	items = Dedupe(items)
	items = Balance(items, opts.SourceCap)
	sortByRecency(items)
	return items
}

// Dedupe collapses items sharing an identity key, keeping the most recent
// occurrence within each group. The key is the safe link when present,
// otherwise a title-namespaced fallback so two linkless items with different
// headlines are not considered duplicates.
func Dedupe(items []feed.Item) []feed.Item {
	type slot struct {
		index int
		item  feed.Item
	}
	byKey := make(map[string]slot, len(items))
	order := make([]string, 0, len(items))

	for _, it := range items {
		key := dedupeKey(it)
		existing, seen := byKey[key]
		if !seen {
			byKey[key] = slot{index: len(order), item: it}
			order = append(order, key)
			continue
		}
		if it.Timestamp.After(existing.item.Timestamp) {
			existing.item = it
			byKey[key] = existing
		}
	}

	out := make([]feed.Item, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key].item)
	}
	return out
}

func dedupeKey(it feed.Item) string {
	if it.Link != "" {
		return it.Link
	}
	return "title:" + it.Headline
}

// Blocked reports whether an item comes from a disallowed source or domain.
// Matching is case-insensitive; domains match exactly or as a parent of the
// link's host.
func Blocked(it feed.Item, terms, domains []string) bool {
	src := strings.ToLower(it.Source)
	for _, term := range terms {
		if t := strings.ToLower(strings.TrimSpace(term)); t != "" && strings.Contains(src, t) {
			return true
		}
	}

	host := ""
	if u, err := url.Parse(it.Link); err == nil {
		host = strings.ToLower(u.Hostname())
	}
	if host == "" {
		return false
	}
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// Balance caps per-source representation: items are grouped by source, each
// group keeps its cap most recent entries, and the flattened result is
// re-sorted by recency.
func Balance(items []feed.Item, limit int) []feed.Item {
	if limit <= 0 {
		return items
	}

	groups := make(map[string][]feed.Item)
	sources := make([]string, 0)
	for _, it := range items {
		key := it.Source
		if key == "" {
			key = "Unknown"
		}
		if _, seen := groups[key]; !seen {
			sources = append(sources, key)
		}
		groups[key] = append(groups[key], it)
	}

	out := make([]feed.Item, 0, len(items))
	for _, src := range sources {
		group := groups[src]
		sortByRecency(group)
		if len(group) > limit {
			group = group[:limit]
		}
		out = append(out, group...)
	}
	sortByRecency(out)
	return out
}

// sortByRecency orders newest first; items with unknown timestamps sort last,
// never interleaved.
func sortByRecency(items []feed.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Timestamp, items[j].Timestamp
		switch {
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		default:
			return a.After(b)
		}
	})
}
