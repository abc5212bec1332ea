// Package session owns the application state the web client kept in module
// globals: the active filter, the per-filter cache and the request sequence.
// Each Session is independent, so tests and commands can run their own.
package session

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/Hummusful/kitzer/internal/cache"
	"github.com/Hummusful/kitzer/internal/config"
	"github.com/Hummusful/kitzer/internal/feed"
	"github.com/Hummusful/kitzer/internal/genre"
	"github.com/Hummusful/kitzer/internal/pipeline"
	"github.com/Hummusful/kitzer/internal/sanitize"
)

// Result is the outcome of one load.
type Result struct {
	Items     []feed.Item
	FromCache bool
	Diag      map[string]any
	Rungs     []feed.RungSummary
	// SourceErrors are non-fatal per-source failures (RSS feeds that did
	// not respond); the load still succeeds with a reduced set.
	SourceErrors []error
}

// Session wires the fetcher, the pipeline and the cache together.
type Session struct {
	cfg    *config.Config
	client *feed.Client
	store  *cache.Store
	seq    atomic.Int64
	diag   atomic.Bool
}

func New(cfg *config.Config) *Session {
	return &Session{
		cfg:    cfg,
		client: feed.NewClient(cfg.TimeoutDuration()),
		store:  cache.New(cfg.TTLDuration()),
	}
}

// NextSeq issues a monotonically increasing request identifier. The renderer
// tags each in-flight load with one and discards results whose identifier is
// no longer current.
func (s *Session) NextSeq() int64 {
	return s.seq.Add(1)
}

// SetDiagnostics asks the aggregator for its diagnostic payload on future
// loads. Atomic because the renderer toggles it while a load may be in
// flight.
func (s *Session) SetDiagnostics(on bool) {
	s.diag.Store(on)
}

// Load produces the item list for a filter. Unless force is set, a cached
// result within the TTL short-circuits the network entirely; a forced
// refresh bypasses the cache read but still writes the fresh result back.
func (s *Session) Load(ctx context.Context, f genre.Filter, force bool) (*Result, error) {
	key := f.Key()
	if !force {
		if items, ok := s.store.Get(key); ok {
			return &Result{Items: items, FromCache: true}, nil
		}
	}

	res := &Result{}
	var raws []feed.RawItem

	if s.cfg.AggregatorEndpoint != "" {
		query := f.Query()
		if s.diag.Load() {
			query.Set("diag", "1")
		}
		payload, err := s.client.FetchItems(ctx, s.cfg.AggregatorEndpoint, query)
		if err != nil {
			return nil, fmt.Errorf("loading feed: %w", err)
		}
		raws = append(raws, payload.Items...)
		res.Diag = payload.Diag
	}

	if len(s.cfg.RSSSources) > 0 {
		rss := feed.FetchRSS(ctx, rssSources(s.cfg))
		raws = append(raws, rss.Items...)
		res.SourceErrors = rss.Errors
	}

	items := s.runPipeline(raws, f)

	// When the narrow request produced nothing usable, walk the Spotify
	// fallback ladder.
	if len(items) == 0 && s.cfg.SpotifyEndpoint != "" {
		ladder, err := s.client.FetchReleases(ctx, s.cfg.SpotifyEndpoint, feed.Attempt{
			Mode:   s.cfg.Mode,
			Market: s.cfg.Market,
			Months: s.cfg.MonthsBack,
		}, func(raw feed.RawItem) bool {
			it, ok := sanitize.Sanitize(raw)
			return ok && f.Matches(it)
		})
		if err != nil {
			return nil, fmt.Errorf("loading releases: %w", err)
		}
		res.Diag = ladder.Diag
		res.Rungs = ladder.Rungs
		items = s.runPipeline(ladder.Items, f)
	}

	res.Items = items
	s.store.Set(key, items)
	return res, nil
}

func (s *Session) runPipeline(raws []feed.RawItem, f genre.Filter) []feed.Item {
	items := pipeline.Run(raws, pipeline.Options{
		MaxAge:         s.cfg.MaxAge(),
		SourceCap:      s.cfg.SourceCap,
		BlockedTerms:   s.cfg.Blocklist.Terms,
		BlockedDomains: s.cfg.Blocklist.Domains,
	})

	out := items[:0]
	for _, it := range items {
		if f.Matches(it) {
			out = append(out, it)
		}
	}
	return out
}

func rssSources(cfg *config.Config) []feed.RSSSource {
	out := make([]feed.RSSSource, 0, len(cfg.RSSSources))
	for _, s := range cfg.RSSSources {
		out = append(out, feed.RSSSource{Name: s.Name, URL: s.URL, Lang: s.Lang})
	}
	return out
}
