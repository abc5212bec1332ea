package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
)

// RSSSource is a direct feed of one of the aggregator's upstream sites.
type RSSSource struct {
	Name string
	URL  string
	Lang string
}

// RSSResult carries the merged items of all sources plus per-source errors.
// A failing source reduces the result set, it does not abort the run.
type RSSResult struct {
	Items  []RawItem
	Errors []error
}

// FetchRSS retrieves all sources concurrently and maps their entries into the
// same raw-item stream as the JSON endpoints.
func FetchRSS(ctx context.Context, sources []RSSSource) RSSResult {
	var (
		mu     sync.Mutex
		result RSSResult
		wg     sync.WaitGroup
	)

	parser := gofeed.NewParser()

	for _, src := range sources {
		wg.Add(1)
		go func(s RSSSource) {
			defer wg.Done()
			f, err := parser.ParseURLWithContext(s.URL, ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("fetching %s: %w", s.Name, err))
				return
			}
			for _, entry := range f.Items {
				if entry == nil {
					continue
				}
				result.Items = append(result.Items, entryToRaw(s, entry))
			}
		}(src)
	}

	wg.Wait()
	return result
}

func entryToRaw(src RSSSource, entry *gofeed.Item) RawItem {
	date := entry.Published
	if entry.PublishedParsed != nil {
		date = entry.PublishedParsed.Format(time.RFC3339)
	} else if entry.UpdatedParsed != nil {
		date = entry.UpdatedParsed.Format(time.RFC3339)
	}

	summary := entry.Description
	if summary == "" {
		summary = entry.Content
	}

	cover := ""
	if entry.Image != nil {
		cover = entry.Image.URL
	}

	return RawItem{
		Source:   src.Name,
		Link:     entry.Link,
		Headline: entry.Title,
		Summary:  summary,
		Date:     date,
		Language: src.Lang,
		Genres:   entry.Categories,
		Cover:    cover,
	}
}
