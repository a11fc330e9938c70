// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publications

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

func pub(title string, year int, opts ...func(*types.Publication)) types.Publication {
	p := types.Publication{
		ID:    Slug(title),
		Title: title,
		Links: map[string]string{},
		Tags:  []string{},
	}
	if year != 0 {
		p.Year = types.IntPtr(year)
	}
	for _, o := range opts {
		o(&p)
	}
	return p
}

func withLinks(kv ...string) func(*types.Publication) {
	return func(p *types.Publication) {
		for i := 0; i+1 < len(kv); i += 2 {
			p.Links[kv[i]] = kv[i+1]
		}
	}
}

func withTags(tags ...string) func(*types.Publication) {
	return func(p *types.Publication) { p.Tags = tags }
}

func withID(id string) func(*types.Publication) {
	return func(p *types.Publication) { p.ID = id }
}

func titles(pubs []types.Publication) []string {
	out := make([]string, len(pubs))
	for i, p := range pubs {
		out[i] = p.Title
	}
	return out
}

func TestMergeFieldOverride(t *testing.T) {
	existing := []types.Publication{
		pub("A", 2020, withLinks("project", "old"), withTags("x")),
	}
	scraped := []types.Publication{
		pub("A", 2021, withLinks("pdf", "new"), withTags("y")),
	}

	got := Merge(existing, scraped)

	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)
	require.NotNil(t, got[0].Year)
	assert.Equal(t, 2021, *got[0].Year)
	assert.Equal(t, map[string]string{"project": "old", "pdf": "new"}, got[0].Links)
	assert.Equal(t, []string{"x", "y"}, got[0].Tags)
}

func TestMergeScrapedLinkWinsOnCollision(t *testing.T) {
	existing := []types.Publication{pub("A", 2020, withLinks("pdf", "old.pdf", "code", "gh"))}
	scraped := []types.Publication{pub("A", 2020, withLinks("pdf", "new.pdf"))}

	got := Merge(existing, scraped)

	require.Len(t, got, 1)
	assert.Equal(t, map[string]string{"pdf": "new.pdf", "code": "gh"}, got[0].Links)
}

func TestMergeScalarFieldsComeFromScraped(t *testing.T) {
	existing := []types.Publication{pub("Paper A", 2019, func(p *types.Publication) {
		p.Authors = "Old Author"
		p.Venue = "Old Venue"
	})}
	scraped := []types.Publication{pub("  paper a ", 0, func(p *types.Publication) {
		p.Authors = "New Author"
		p.Venue = "New Venue"
	})}

	got := Merge(existing, scraped)

	require.Len(t, got, 1)
	assert.Equal(t, "  paper a ", got[0].Title)
	assert.Equal(t, "New Author", got[0].Authors)
	assert.Equal(t, "New Venue", got[0].Venue)
	assert.Nil(t, got[0].Year, "an absent scraped year overrides the persisted one")
}

func TestMergeIDStability(t *testing.T) {
	existing := []types.Publication{pub("Paper A", 2020, withID("paper-a"))}
	scraped := []types.Publication{pub("Paper A", 2020, withID("different-slug"))}

	got := Merge(existing, scraped)

	require.Len(t, got, 1)
	assert.Equal(t, "paper-a", got[0].ID)
}

func TestMergeEmptyExistingIDFallsBackToScraped(t *testing.T) {
	existing := []types.Publication{pub("Paper A", 2020, withID(""))}
	scraped := []types.Publication{pub("Paper A", 2020, withID("paper-a"))}

	got := Merge(existing, scraped)

	require.Len(t, got, 1)
	assert.Equal(t, "paper-a", got[0].ID)
}

func TestMergeLegacyPreservation(t *testing.T) {
	legacy := pub("Hand Written Entry", 2015, withLinks("slides", "s.pdf"), withTags("talk"))
	legacy.Extra = map[string]json.RawMessage{"featured": json.RawMessage(`true`)}
	existing := []types.Publication{legacy}
	scraped := []types.Publication{pub("Fresh Paper", 2024)}

	got := Merge(existing, scraped)

	require.Len(t, got, 2)
	assert.Equal(t, "Fresh Paper", got[0].Title)
	assert.Equal(t, legacy, got[1])
}

func TestMergeKeepsExtraFieldsOfMatchedRecords(t *testing.T) {
	old := pub("A", 2020)
	old.Extra = map[string]json.RawMessage{"abstract": json.RawMessage(`"curated"`)}

	got := Merge([]types.Publication{old}, []types.Publication{pub("A", 2020)})

	require.Len(t, got, 1)
	assert.JSONEq(t, `"curated"`, string(got[0].Extra["abstract"]))
}

func TestMergeNoLoss(t *testing.T) {
	existing := []types.Publication{
		pub("Alpha", 2018), pub("Beta", 2019), pub("Gamma", 0),
	}
	scraped := []types.Publication{
		pub("beta", 2019), pub("Delta", 2022), pub("Epsilon", 2017),
	}

	got := Merge(existing, scraped)

	counts := map[string]int{}
	for _, p := range got {
		counts[TitleKey(p.Title)]++
	}
	for _, title := range []string{"alpha", "beta", "gamma", "delta", "epsilon"} {
		assert.Equal(t, 1, counts[title], "title %q", title)
	}
	assert.Len(t, got, 5)
}

func TestMergeIdempotence(t *testing.T) {
	scraped := []types.Publication{
		pub("One", 2021, withLinks("pdf", "1.pdf")),
		pub("Two", 2020, withTags("b", "a")),
		pub("Three", 0),
	}
	existing := make([]types.Publication, len(scraped))
	for i, p := range scraped {
		existing[i] = p.Clone()
		existing[i].ID = "kept-" + p.ID
	}

	got := Merge(existing, scraped)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"One", "Two", "Three"}, titles(got))
	for _, p := range got {
		assert.Equal(t, "kept-"+Slug(p.Title), p.ID)
	}
	assert.Equal(t, []string{"a", "b"}, got[1].Tags)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	existing := []types.Publication{pub("A", 2020, withLinks("project", "old"), withTags("x"))}
	scraped := []types.Publication{pub("A", 2021, withLinks("pdf", "new"), withTags("y"))}

	got := Merge(existing, scraped)
	got[0].Links["extra"] = "mutated"
	got[0].Tags[0] = "mutated"

	assert.Equal(t, map[string]string{"project": "old"}, existing[0].Links)
	assert.Equal(t, map[string]string{"pdf": "new"}, scraped[0].Links)
	assert.Equal(t, []string{"x"}, existing[0].Tags)
	assert.Equal(t, 2020, *existing[0].Year)
}

func TestMergeDuplicateExistingLastWins(t *testing.T) {
	existing := []types.Publication{
		pub("Dup", 2019, withID("first")),
		pub("dup", 2019, withID("second")),
	}
	scraped := []types.Publication{pub("Dup", 2019, withID("scraped"))}

	got := Merge(existing, scraped)

	require.Len(t, got, 1)
	assert.Equal(t, "second", got[0].ID)
}

func TestMergeEmptyInputs(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
	assert.Equal(t, []string{"X"}, titles(Merge(nil, []types.Publication{pub("X", 1)})))
	assert.Equal(t, []string{"Y"}, titles(Merge([]types.Publication{pub("Y", 1)}, nil)))
}

func TestSortPublications(t *testing.T) {
	tests := []struct {
		name string
		in   []types.Publication
		want []string
	}{
		{
			name: "undated sorts last",
			in:   []types.Publication{pub("B", 2019), pub("C", 0), pub("A", 2020)},
			want: []string{"A", "B", "C"},
		},
		{
			name: "same year sorts by title descending",
			in:   []types.Publication{pub("apple", 2020), pub("cherry", 2020), pub("banana", 2020)},
			want: []string{"cherry", "banana", "apple"},
		},
		{
			name: "year zero and negative years stay above undated",
			in: []types.Publication{
				pub("Undated", 0),
				func() types.Publication { p := pub("Zero", 0); p.Year = types.IntPtr(0); return p }(),
				pub("Negative", -5),
			},
			want: []string{"Zero", "Negative", "Undated"},
		},
		{
			name: "undated records order by title descending",
			in:   []types.Publication{pub("a", 0), pub("c", 0), pub("b", 0)},
			want: []string{"c", "b", "a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortPublications(tt.in)
			assert.Equal(t, tt.want, titles(tt.in))
		})
	}
}

func TestSortPublicationsIsStable(t *testing.T) {
	in := []types.Publication{
		pub("Same", 2020, withID("first")),
		pub("Same", 2020, withID("second")),
		pub("Same", 2020, withID("third")),
	}

	SortPublications(in)

	assert.Equal(t, "first", in[0].ID)
	assert.Equal(t, "second", in[1].ID)
	assert.Equal(t, "third", in[2].ID)
}

func TestSummarize(t *testing.T) {
	existing := []types.Publication{pub("A", 2020), pub("B", 2019), pub("Legacy", 2010)}
	scraped := []types.Publication{pub("a", 2020), pub("b", 2019), pub("New", 2024)}

	s := Summarize(existing, scraped)

	assert.Equal(t, Summary{Updated: 2, Added: 1, Preserved: 1}, s)
	assert.Equal(t, len(Merge(existing, scraped)), s.Total())
}
