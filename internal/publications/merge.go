// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publications

import (
	"sort"
	"strings"

	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

// TitleKey returns the merge identity of a title: trimmed and lowercased.
func TitleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Merge combines the persisted list with a fresh fetch.
//
// Scraped records come first, in scraped order. A scraped record whose
// title matches an existing one is merged field by field (see mergeRecord);
// otherwise it is taken as is. Existing records the fetch did not return are
// appended unchanged: a fetch never deletes anything. The result is sorted
// newest first, then by title descending, with undated records last.
//
// existing must not contain two records with the same TitleKey; if it does,
// the later one wins the lookup. Neither input is modified.
func Merge(existing, scraped []types.Publication) []types.Publication {
	byTitle := make(map[string]types.Publication, len(existing))
	for _, p := range existing {
		byTitle[TitleKey(p.Title)] = p
	}

	merged := make([]types.Publication, 0, len(existing)+len(scraped))
	seen := make(map[string]bool, len(scraped))
	for _, p := range scraped {
		key := TitleKey(p.Title)
		seen[key] = true
		if old, ok := byTitle[key]; ok {
			merged = append(merged, mergeRecord(old, p))
			continue
		}
		merged = append(merged, p.Clone())
	}

	for _, old := range existing {
		if !seen[TitleKey(old.Title)] {
			merged = append(merged, old.Clone())
		}
	}

	SortPublications(merged)
	return merged
}

// mergeRecord builds the record for a publication present on both sides.
// Title, authors, venue and year come from the fresh fetch, links are
// unioned with fetched URLs winning, tags are unioned and sorted, and the
// persisted id and extra fields are kept.
func mergeRecord(old, scraped types.Publication) types.Publication {
	out := types.Publication{
		ID:      old.ID,
		Title:   scraped.Title,
		Authors: scraped.Authors,
		Venue:   scraped.Venue,
		Links:   make(map[string]string, len(old.Links)+len(scraped.Links)),
		Tags:    unionTags(old.Tags, scraped.Tags),
	}
	if out.ID == "" {
		out.ID = scraped.ID
	}
	if scraped.Year != nil {
		out.Year = types.IntPtr(*scraped.Year)
	}
	for k, v := range old.Links {
		out.Links[k] = v
	}
	for k, v := range scraped.Links {
		out.Links[k] = v
	}
	if old.Extra != nil {
		out.Extra = old.Clone().Extra
	}
	return out
}

func unionTags(a, b []string) []string {
	set := make(map[string]bool, len(a)+len(b))
	tags := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, t := range list {
			if !set[t] {
				set[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// SortPublications orders pubs by (year, title) descending. A missing year
// ranks below every real year. The sort is stable.
func SortPublications(pubs []types.Publication) {
	sort.SliceStable(pubs, func(i, j int) bool {
		return after(pubs[i], pubs[j])
	})
}

// after reports whether a sorts strictly before b in the descending order.
func after(a, b types.Publication) bool {
	switch {
	case a.HasYear() && !b.HasYear():
		return true
	case !a.HasYear() && b.HasYear():
		return false
	case a.HasYear() && *a.Year != *b.Year:
		return *a.Year > *b.Year
	}
	return a.Title > b.Title
}

// Summary counts how a merge treated each record.
type Summary struct {
	// Updated counts scraped records that matched a persisted one.
	Updated int
	// Added counts scraped records with no persisted match.
	Added int
	// Preserved counts persisted records the fetch did not return.
	Preserved int
}

// Total returns the number of records in the merged list.
func (s Summary) Total() int {
	return s.Updated + s.Added + s.Preserved
}

// Summarize reports what Merge does with the same inputs.
func Summarize(existing, scraped []types.Publication) Summary {
	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[TitleKey(p.Title)] = true
	}

	var s Summary
	seen := make(map[string]bool, len(scraped))
	for _, p := range scraped {
		key := TitleKey(p.Title)
		seen[key] = true
		if known[key] {
			s.Updated++
		} else {
			s.Added++
		}
	}
	for _, p := range existing {
		if !seen[TitleKey(p.Title)] {
			s.Preserved++
		}
	}
	return s
}
