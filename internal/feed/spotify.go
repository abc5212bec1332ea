package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Attempt identifies one rung of the Spotify fallback ladder.
type Attempt struct {
	Mode   string // "curated" or "extended"
	Market string // ISO country code
	Months int    // monthsBack window
}

// RungSummary records the outcome of one ladder attempt for diagnostics.
type RungSummary struct {
	Attempt
	Err               string
	ServerCount       int
	Kept              int
	ClientFilteredAll bool
}

func (r RungSummary) String() string {
	label := fmt.Sprintf("%s/%s/%dm", r.Mode, r.Market, r.Months)
	switch {
	case r.Err != "":
		return fmt.Sprintf("%s: error: %s", label, r.Err)
	case r.ClientFilteredAll:
		return fmt.Sprintf("%s: %d from server, client filtered all", label, r.ServerCount)
	default:
		return fmt.Sprintf("%s: kept %d of %d", label, r.Kept, r.ServerCount)
	}
}

// ReleasesResult is the outcome of a full ladder run. When every rung came up
// empty, Items is empty and Diag holds the last attempted rung's diagnostics.
type ReleasesResult struct {
	Items []RawItem
	Diag  map[string]any
	Rungs []RungSummary
}

// releasesPayload is the Spotify worker's response shape.
type releasesPayload struct {
	Albums       []album        `json:"albums"`
	Count        int            `json:"count"`
	TotalFetched int            `json:"total_fetched"`
	AfterFilter  int            `json:"after_filter"`
	Market       string         `json:"market"`
	Mode         string         `json:"mode"`
	Diag         map[string]any `json:"diag"`
}

type album struct {
	AlbumName    string   `json:"album_name"`
	URL          string   `json:"url"`
	ReleaseDate  string   `json:"release_date"`
	AlbumType    string   `json:"album_type"`
	Label        string   `json:"label"`
	TotalTracks  int      `json:"total_tracks"`
	PrimaryGenre string   `json:"primary_genre"`
	Genres       []string `json:"genres"`
	Artists      []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

func (a album) toRaw() RawItem {
	var names []string
	for _, ar := range a.Artists {
		if ar.Name != "" {
			names = append(names, ar.Name)
		}
	}
	artists := strings.Join(names, ", ")

	headline := a.AlbumName
	if headline == "" {
		headline = "Album"
	}
	summary := ""
	if artists != "" {
		summary = "Artist: " + artists
	}
	cover := ""
	if len(a.Images) > 0 {
		cover = a.Images[0].URL
	}
	genres := a.Genres
	if len(genres) == 0 && a.PrimaryGenre != "" {
		genres = []string{a.PrimaryGenre}
	}
	alt := headline
	if artists != "" {
		alt += " by " + artists
	}

	return RawItem{
		Source:   "Spotify",
		Link:     a.URL,
		Headline: headline,
		Summary:  summary,
		Date:     a.ReleaseDate,
		Language: "EN",
		Genres:   genres,
		Cover:    cover,
		AltText:  alt,
		Meta: &Meta{
			Type:    a.AlbumType,
			Label:   a.Label,
			Release: a.ReleaseDate,
			Tracks:  a.TotalTracks,
		},
	}
}

// ladder returns the ordered attempts for a requested mode/market/window,
// broadening parameters rung by rung. Duplicate rungs are collapsed so each
// parameter set is requested at most once.
func ladder(req Attempt) []Attempt {
	attempts := []Attempt{
		req,
		{Mode: "extended", Market: req.Market, Months: req.Months},
		{Mode: "extended", Market: req.Market, Months: 6},
		{Mode: "extended", Market: "US", Months: 6},
	}
	seen := make(map[Attempt]bool, len(attempts))
	out := attempts[:0]
	for _, a := range attempts {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// FetchReleases walks the fallback ladder until a rung yields at least one
// item surviving the keep filter. Rung errors are swallowed and the ladder
// continues; only the last attempted rung's diagnostics are retained when
// everything fails.
func (c *Client) FetchReleases(ctx context.Context, endpoint string, req Attempt, keep func(RawItem) bool) (*ReleasesResult, error) {
	if keep == nil {
		keep = func(RawItem) bool { return true }
	}

	res := &ReleasesResult{}
	for _, att := range ladder(req) {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		params := url.Values{
			"mode":       {att.Mode},
			"market":     {att.Market},
			"monthsBack": {strconv.Itoa(att.Months)},
		}
		summary := RungSummary{Attempt: att}

		body, err := c.getJSON(ctx, endpoint, params)
		if err != nil {
			summary.Err = err.Error()
			res.Rungs = append(res.Rungs, summary)
			continue
		}
		var p releasesPayload
		if err := json.Unmarshal(body, &p); err != nil {
			summary.Err = (&ParseError{Err: err}).Error()
			res.Rungs = append(res.Rungs, summary)
			continue
		}

		summary.ServerCount = len(p.Albums)
		var kept []RawItem
		for _, a := range p.Albums {
			raw := a.toRaw()
			if keep(raw) {
				kept = append(kept, raw)
			}
		}
		summary.Kept = len(kept)
		summary.ClientFilteredAll = len(p.Albums) > 0 && len(kept) == 0
		res.Rungs = append(res.Rungs, summary)
		res.Diag = releaseDiag(p)

		if len(kept) > 0 {
			res.Items = kept
			return res, nil
		}
	}
	return res, nil
}

func releaseDiag(p releasesPayload) map[string]any {
	diag := map[string]any{
		"count":         p.Count,
		"total_fetched": p.TotalFetched,
		"after_filter":  p.AfterFilter,
		"market":        p.Market,
		"mode":          p.Mode,
	}
	for k, v := range p.Diag {
		diag[k] = v
	}
	return diag
}
