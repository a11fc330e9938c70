// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pamolchanov/pamolchanov.github.io/internal/publications"
	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

func semanticTestServer(t *testing.T, apiKey string, handler http.HandlerFunc) *SemanticScholar {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	t.Cleanup(func() { semanticAPIBase = old })

	return &SemanticScholar{Client: ts.Client(), APIKey: apiKey, UserAgent: "test/0.1"}
}

func TestSemanticScholarAuthor(t *testing.T) {
	var captured *http.Request
	s := semanticTestServer(t, "key-123", func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"authorId":"1741101","name":"Ada Lovelace"}`)
	})

	p, err := s.Author(context.Background(), "1741101")
	require.NoError(t, err)

	assert.Equal(t, Profile{ID: "1741101", Name: "Ada Lovelace"}, p)
	assert.Equal(t, "/author/1741101", captured.URL.Path)
	assert.Equal(t, "name", captured.URL.Query().Get("fields"))
	assert.Equal(t, "key-123", captured.Header.Get("x-api-key"))
	assert.Equal(t, "test/0.1", captured.Header.Get("User-Agent"))
}

func TestSemanticScholarAuthorNotFound(t *testing.T) {
	s := semanticTestServer(t, "", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"Author not found"}`)
	})

	_, err := s.Author(context.Background(), "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestSemanticScholarPublicationsPaginates(t *testing.T) {
	var offsets []string
	s := semanticTestServer(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/author/42/papers", r.URL.Path)
		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)
		switch offset {
		case "0":
			fmt.Fprint(w, `{"offset":0,"next":2,"data":[{"paperId":"p1","title":"One"},{"paperId":"p2","title":"Two"}]}`)
		default:
			fmt.Fprint(w, `{"offset":2,"data":[{"paperId":"p3","title":"Three"},{"paperId":"","title":"No id"}]}`)
		}
	})

	stubs, err := s.Publications(context.Background(), Profile{ID: "42"})
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "2"}, offsets)
	assert.Equal(t, []Stub{{ID: "p1", Title: "One"}, {ID: "p2", Title: "Two"}, {ID: "p3", Title: "Three"}}, stubs)
}

func TestSemanticScholarFill(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantVenue string
		wantLinks map[string]string
		wantYear  *int
	}{
		{
			name: "arXiv paper with open access PDF",
			body: `{"paperId":"p1","title":"Deep Nets","venue":"","year":2022,
				"url":"https://www.semanticscholar.org/paper/p1",
				"authors":[{"authorId":"1","name":"Ada Lovelace"},{"authorId":"2","name":"Alan Turing"}],
				"journal":{"name":"ArXiv"},
				"externalIds":{"ArXiv":"2201.00001"},
				"openAccessPdf":{"url":"https://oa.example/p1.pdf"}}`,
			wantVenue: "ArXiv",
			wantLinks: map[string]string{
				"pdf":     "https://arxiv.org/pdf/2201.00001",
				"project": "https://www.semanticscholar.org/paper/p1",
			},
			wantYear: types.IntPtr(2022),
		},
		{
			name: "journal paper with DOI and no year",
			body: `{"paperId":"p2","title":"Deep Nets","venue":"Nature","year":null,
				"authors":[],"journal":null,"publicationVenue":{"name":"Nature"},
				"externalIds":{"DOI":"10.1000/xyz"},"openAccessPdf":null}`,
			wantVenue: "Nature",
			wantLinks: map[string]string{"project": "https://doi.org/10.1000/xyz"},
		},
		{
			name: "DOI link beats the Semantic Scholar page and coexists with arXiv",
			body: `{"paperId":"p3","title":"Deep Nets","venue":"ICML","year":2021,
				"url":"https://www.semanticscholar.org/paper/p3",
				"externalIds":{"ArXiv":"2101.00002","DOI":"10.5555/icml.3"}}`,
			wantVenue: "ICML",
			wantLinks: map[string]string{
				"pdf":     "https://arxiv.org/pdf/2101.00002",
				"project": "https://doi.org/10.5555/icml.3",
			},
			wantYear: types.IntPtr(2021),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured *http.Request
			s := semanticTestServer(t, "", func(w http.ResponseWriter, r *http.Request) {
				captured = r
				fmt.Fprint(w, tt.body)
			})

			raw, err := s.Fill(context.Background(), Stub{ID: "p1", Title: "Deep Nets"})
			require.NoError(t, err)
			assert.Equal(t, "/paper/p1", captured.URL.Path)
			assert.Equal(t, semanticPaperFields, captured.URL.Query().Get("fields"))

			pub, ok := publications.Normalize(raw)
			require.True(t, ok)
			assert.Equal(t, "deep-nets", pub.ID)
			assert.Equal(t, tt.wantVenue, pub.Venue)
			assert.Equal(t, tt.wantLinks, pub.Links)
			assert.Equal(t, tt.wantYear, pub.Year)
		})
	}
}

func TestSemanticScholarFillAuthors(t *testing.T) {
	s := semanticTestServer(t, "", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"paperId":"p1","title":"T","authors":[{"name":"Ada Lovelace"},{"name":""},{"name":"Alan Turing"}]}`)
	})

	raw, err := s.Fill(context.Background(), Stub{ID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, types.AuthorList("Ada Lovelace", "Alan Turing"), raw.Bib.Author)
}

func TestSemanticScholarMalformedResponse(t *testing.T) {
	s := semanticTestServer(t, "", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{not json`)
	})

	_, err := s.Fill(context.Background(), Stub{ID: "p1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing Semantic Scholar response")
}
