// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the site maintenance tools:
// the canonical Publication written to data/publications.json, the RawRecord
// produced by scholar sources, the featured-paper details consumed by the
// teaser updater, and the configuration structs for both commands.
package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Publication is one entry of the website's publication list.
type Publication struct {
	// ID is a slug of the title. Once persisted it is kept stable across runs.
	ID string `json:"id" yaml:"id"`

	// Title is the publication title; its trimmed, lowercased form is the
	// identity key used when merging.
	Title string `json:"title" yaml:"title"`

	// Authors holds author names joined with ", ".
	Authors string `json:"authors" yaml:"authors"`

	// Venue is the conference or journal name.
	Venue string `json:"venue" yaml:"venue"`

	// Year is nil when the publication year is unknown.
	Year *int `json:"year" yaml:"year"`

	// Links maps a link kind ("pdf", "project", ...) to a URL.
	Links map[string]string `json:"links" yaml:"links"`

	// Tags is a de-duplicated list of labels.
	Tags []string `json:"tags" yaml:"tags"`

	// Extra holds keys of a persisted record that are not modelled above
	// (abstracts, featured flags and other hand-curated fields). They are
	// written back verbatim.
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// knownPublicationKeys lists the JSON keys modelled by Publication.
// encoding/json matches them case-insensitively, so lookups use the
// lowercased key.
var knownPublicationKeys = map[string]bool{
	"id": true, "title": true, "authors": true, "venue": true,
	"year": true, "links": true, "tags": true,
}

// publicationJSON mirrors Publication without its methods.
type publicationJSON struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Authors string            `json:"authors"`
	Venue   string            `json:"venue"`
	Year    *int              `json:"year"`
	Links   map[string]string `json:"links"`
	Tags    []string          `json:"tags"`
}

// IntPtr returns a pointer to v, for populating Publication.Year.
func IntPtr(v int) *int { return &v }

// HasYear reports whether the publication year is known.
func (p Publication) HasYear() bool { return p.Year != nil }

// Clone returns a deep copy of p.
func (p Publication) Clone() Publication {
	c := p
	if p.Year != nil {
		c.Year = IntPtr(*p.Year)
	}
	c.Links = make(map[string]string, len(p.Links))
	for k, v := range p.Links {
		c.Links[k] = v
	}
	c.Tags = append([]string{}, p.Tags...)
	if p.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(p.Extra))
		for k, v := range p.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}

// MarshalJSON writes the modelled keys first, then Extra in sorted key
// order. Empty Links and Tags are written as {} and [] rather than null.
func (p Publication) MarshalJSON() ([]byte, error) {
	known := publicationJSON{
		ID:      p.ID,
		Title:   p.Title,
		Authors: p.Authors,
		Venue:   p.Venue,
		Year:    p.Year,
		Links:   p.Links,
		Tags:    p.Tags,
	}
	if known.Links == nil {
		known.Links = map[string]string{}
	}
	if known.Tags == nil {
		known.Tags = []string{}
	}

	out, err := marshalUnescaped(known)
	if err != nil {
		return nil, err
	}
	if len(p.Extra) == 0 {
		return out, nil
	}

	keys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		if !knownPublicationKeys[strings.ToLower(k)] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	// Drop the closing brace and append the extra members.
	out = out[:len(out)-1]
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		out = append(out, ',')
		out = append(out, name...)
		out = append(out, ':')
		out = append(out, p.Extra[k]...)
	}
	return append(out, '}'), nil
}

// UnmarshalJSON reads the modelled keys and keeps every other key in Extra.
// A key differing from a modelled one only in case ("Year") is read into
// the modelled field and not kept.
func (p *Publication) UnmarshalJSON(data []byte) error {
	var known publicationJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	if all == nil {
		return fmt.Errorf("publication must be a JSON object")
	}

	*p = Publication{
		ID:      known.ID,
		Title:   known.Title,
		Authors: known.Authors,
		Venue:   known.Venue,
		Year:    known.Year,
		Links:   known.Links,
		Tags:    known.Tags,
	}
	for k, v := range all {
		if knownPublicationKeys[strings.ToLower(k)] {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]json.RawMessage)
		}
		p.Extra[k] = v
	}
	return nil
}
