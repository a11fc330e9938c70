// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publications turns raw scholar records into the website's
// publication list: it normalizes records, merges a fresh fetch into the
// persisted list, and loads, saves and exports that list.
package publications

import (
	"strings"
	"unicode"

	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

// Slug returns the URL-safe identifier for a title: lowercase runs of
// letters and numbers (including forms like ² and ½) joined by single
// hyphens. Every other rune separates words.
func Slug(title string) string {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	return strings.Join(words, "-")
}

// Normalize maps a raw record onto a Publication. It reports false when the
// record has no usable title; such records cannot be keyed and are dropped.
func Normalize(raw types.RawRecord) (types.Publication, bool) {
	title := raw.Bib.Title
	if strings.TrimSpace(title) == "" {
		title = strings.TrimSpace(raw.ContainerType)
	}
	if title == "" {
		return types.Publication{}, false
	}

	p := types.Publication{
		ID:      Slug(title),
		Title:   title,
		Authors: normalizeAuthors(raw.Bib.Author),
		Venue:   firstNonEmpty(raw.Bib.Venue, raw.Bib.Journal, raw.Bib.PubVenue),
		Links:   map[string]string{},
		Tags:    []string{},
	}

	year := raw.Bib.PubYear
	if year == "" {
		year = raw.Bib.Year
	}
	if y, ok := year.Int(); ok {
		p.Year = types.IntPtr(y)
	}

	if eprint := firstNonEmpty(raw.Bib.Eprint, raw.EprintURL); eprint != "" {
		p.Links["pdf"] = eprint
	}
	if u := firstNonEmpty(raw.PubURL, raw.AuthorPubURL, raw.Bib.URL); u != "" {
		if _, ok := p.Links["project"]; !ok {
			p.Links["project"] = u
		}
	}

	return p, true
}

func normalizeAuthors(a types.AuthorField) string {
	if a.IsList() {
		return strings.Join(a.Names, ", ")
	}
	return a.Text
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
