package feed

import (
	"encoding/json"
	"time"
)

// RawItem is one record as received from an aggregator endpoint. Fields are
// loosely typed on the wire; everything here is pre-sanitization.
type RawItem struct {
	Source   string   `json:"source"`
	Link     string   `json:"link"`
	Headline string   `json:"headline"`
	Summary  string   `json:"summary"`
	Date     string   `json:"date"`
	Language string   `json:"language"`
	Genre    string   `json:"genre"`
	Genres   []string `json:"genres"`
	Cover    string   `json:"cover"`
	AltText  string   `json:"altText"`
	Meta     *Meta    `json:"meta"`
}

// Meta carries the structured fields of album-style items.
type Meta struct {
	Type    string `json:"type"`
	Label   string `json:"label"`
	Release string `json:"release"`
	Tracks  int    `json:"tracks"`
}

// Item is a sanitized, display-ready record.
type Item struct {
	Source    string
	Link      string // absolute http(s) URL, or "" when the item is not linkable
	Headline  string
	Summary   string
	Timestamp time.Time // zero when the date could not be parsed
	Language  string    // "HE" or "EN"
	Genres    []string
	Cover     string
	AltText   string
	Meta      *Meta
}

// Payload is the normalized response of an aggregator endpoint. The wire
// format is either a bare array of items or an object with an "items" array
// plus optional diagnostics; anything else decodes to an empty payload.
type Payload struct {
	Items []RawItem
	Diag  map[string]any
}

func (p *Payload) UnmarshalJSON(data []byte) error {
	var arr []RawItem
	if err := json.Unmarshal(data, &arr); err == nil {
		p.Items = arr
		return nil
	}

	var obj struct {
		Items []RawItem      `json:"items"`
		Diag  map[string]any `json:"diag"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// A well-formed document in neither shape (scalar, or an object
		// whose items field is not an array) is an empty feed, not an
		// error. Only malformed JSON propagates.
		if json.Valid(data) {
			return nil
		}
		return err
	}
	p.Items = obj.Items
	p.Diag = obj.Diag
	return nil
}
