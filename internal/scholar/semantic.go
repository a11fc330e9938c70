// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pamolchanov/pamolchanov.github.io/internal/httputil"
	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

// semanticAPIBase is the Semantic Scholar Graph API root. Declared as a var
// so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1"

const (
	semanticPaperFields = "title,authors,venue,journal,publicationVenue,year,externalIds,openAccessPdf,url"
	semanticPageSize    = 100
)

// SemanticScholar reads author profiles from the Semantic Scholar Graph API.
type SemanticScholar struct {
	Client    *http.Client
	APIKey    string
	UserAgent string

	// Log receives rate-limit backoff notices. Nil discards.
	Log io.Writer
}

// Name returns the backend identifier.
func (s *SemanticScholar) Name() string { return string(types.SourceSemanticScholar) }

// Author looks up the author record for a Semantic Scholar author id.
func (s *SemanticScholar) Author(ctx context.Context, id string) (Profile, error) {
	if id == "" {
		return Profile{}, fmt.Errorf("empty author id")
	}
	var a semanticAuthor
	if err := s.getJSON(ctx, "/author/"+url.PathEscape(id), url.Values{"fields": {"name"}}, &a); err != nil {
		return Profile{}, err
	}
	if a.AuthorID == "" {
		a.AuthorID = id
	}
	return Profile{ID: a.AuthorID, Name: a.Name}, nil
}

// Publications pages through the author's papers.
func (s *SemanticScholar) Publications(ctx context.Context, p Profile) ([]Stub, error) {
	var stubs []Stub
	offset := 0
	for {
		var page semanticPapersPage
		params := url.Values{
			"fields": {"title"},
			"limit":  {strconv.Itoa(semanticPageSize)},
			"offset": {strconv.Itoa(offset)},
		}
		if err := s.getJSON(ctx, "/author/"+url.PathEscape(p.ID)+"/papers", params, &page); err != nil {
			return nil, fmt.Errorf("papers at offset %d: %w", offset, err)
		}
		for _, paper := range page.Data {
			if paper.PaperID == "" {
				continue
			}
			stubs = append(stubs, Stub{ID: paper.PaperID, Title: paper.Title})
		}
		if page.Next == nil || *page.Next <= offset || len(page.Data) == 0 {
			return stubs, nil
		}
		offset = *page.Next
	}
}

// Fill fetches the full paper record for a stub.
func (s *SemanticScholar) Fill(ctx context.Context, stub Stub) (types.RawRecord, error) {
	var paper semanticPaper
	if err := s.getJSON(ctx, "/paper/"+url.PathEscape(stub.ID), url.Values{"fields": {semanticPaperFields}}, &paper); err != nil {
		return types.RawRecord{}, err
	}
	return paper.toRaw(stub), nil
}

func (p semanticPaper) toRaw(stub Stub) types.RawRecord {
	raw := types.RawRecord{
		Source:        string(types.SourceSemanticScholar),
		StubID:        stub.ID,
		ContainerType: stub.Title,
		PubURL:        p.URL,
	}
	if p.ExternalIDs.DOI != "" {
		raw.PubURL = "https://doi.org/" + p.ExternalIDs.DOI
	}
	raw.Bib.Title = p.Title
	raw.Bib.Venue = p.Venue

	names := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	raw.Bib.Author = types.AuthorList(names...)

	if p.Journal != nil {
		raw.Bib.Journal = p.Journal.Name
	}
	if p.PublicationVenue != nil {
		raw.Bib.PubVenue = p.PublicationVenue.Name
	}
	if p.Year > 0 {
		raw.Bib.Year = types.YearField(strconv.Itoa(p.Year))
	}
	if p.OpenAccessPdf != nil {
		raw.EprintURL = p.OpenAccessPdf.URL
	}
	if p.ExternalIDs.ArXiv != "" {
		raw.Bib.Eprint = "https://arxiv.org/pdf/" + p.ExternalIDs.ArXiv
	}
	return raw
}

func (s *SemanticScholar) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAPIBase+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}
	if s.APIKey != "" {
		req.Header.Set("x-api-key", s.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, httputil.RetryPolicy{Log: s.Log})
	if err != nil {
		return fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}
	return nil
}

// Semantic Scholar API JSON structures.
type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticPapersPage struct {
	Offset int             `json:"offset"`
	Next   *int            `json:"next"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID          string              `json:"paperId"`
	Title            string              `json:"title"`
	Venue            string              `json:"venue"`
	Year             int                 `json:"year"`
	URL              string              `json:"url"`
	Authors          []semanticAuthor    `json:"authors"`
	Journal          *semanticNamed      `json:"journal"`
	PublicationVenue *semanticNamed      `json:"publicationVenue"`
	ExternalIDs      semanticExternalIDs `json:"externalIds"`
	OpenAccessPdf    *semanticPDF        `json:"openAccessPdf"`
}

type semanticNamed struct {
	Name string `json:"name"`
}

type semanticPDF struct {
	URL string `json:"url"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}
