// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/pamolchanov/pamolchanov.github.io/internal/httputil"
	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

// googleScholarBase is the Google Scholar profile endpoint. Declared as a
// var so tests can substitute an httptest server.
var googleScholarBase = "https://scholar.google.com/citations"

// googlePageSize is the number of rows requested per profile page; 100 is
// the largest page the site serves.
const googlePageSize = 100

// defaultRequestInterval paces requests when the config leaves it unset.
const defaultRequestInterval = 2 * time.Second

// ErrBlocked is returned when Google Scholar answers with a CAPTCHA page
// instead of content.
var ErrBlocked = errors.New("google scholar served a CAPTCHA page; set scholar_cookie or retry later")

// GoogleScholar scrapes public Google Scholar profile pages.
type GoogleScholar struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	cookie    string
	log       io.Writer
}

// NewGoogleScholar returns a scraper pacing its requests to one per
// cfg.RequestInterval.
func NewGoogleScholar(client *http.Client, cfg types.ScholarConfig, w io.Writer) *GoogleScholar {
	interval := cfg.RequestInterval
	if interval <= 0 {
		interval = defaultRequestInterval
	}
	return &GoogleScholar{
		client:    client,
		limiter:   rate.NewLimiter(rate.Every(interval), 1),
		userAgent: cfg.UserAgent,
		cookie:    cfg.ScholarCookie,
		log:       w,
	}
}

// Name returns the backend identifier.
func (g *GoogleScholar) Name() string { return string(types.SourceGoogleScholar) }

// Author fetches the first profile page to confirm the profile exists and
// read the author's name.
func (g *GoogleScholar) Author(ctx context.Context, id string) (Profile, error) {
	if id == "" {
		return Profile{}, fmt.Errorf("empty author id")
	}
	doc, err := g.get(ctx, url.Values{"user": {id}, "hl": {"en"}})
	if err != nil {
		return Profile{}, err
	}
	name := strings.TrimSpace(doc.Find("#gsc_prf_in").First().Text())
	if name == "" {
		return Profile{}, fmt.Errorf("no Google Scholar profile for user %s", id)
	}
	return Profile{ID: id, Name: name}, nil
}

// Publications pages through the profile's publication table.
func (g *GoogleScholar) Publications(ctx context.Context, p Profile) ([]Stub, error) {
	var stubs []Stub
	for start := 0; ; start += googlePageSize {
		doc, err := g.get(ctx, url.Values{
			"user":     {p.ID},
			"hl":       {"en"},
			"cstart":   {strconv.Itoa(start)},
			"pagesize": {strconv.Itoa(googlePageSize)},
		})
		if err != nil {
			return nil, fmt.Errorf("profile page at %d: %w", start, err)
		}

		rows := doc.Find("#gsc_a_b .gsc_a_tr")
		rows.Each(func(_ int, row *goquery.Selection) {
			link := row.Find("a.gsc_a_at").First()
			href, ok := link.Attr("href")
			if !ok {
				href, _ = link.Attr("data-href")
			}
			id := citationID(href)
			if id == "" {
				return
			}
			stubs = append(stubs, Stub{ID: id, Title: strings.TrimSpace(link.Text())})
		})

		if rows.Length() < googlePageSize {
			return stubs, nil
		}
	}
}

// Fill fetches the citation detail page of a stub.
func (g *GoogleScholar) Fill(ctx context.Context, s Stub) (types.RawRecord, error) {
	doc, err := g.get(ctx, url.Values{
		"view_op":           {"view_citation"},
		"hl":                {"en"},
		"citation_for_view": {s.ID},
	})
	if err != nil {
		return types.RawRecord{}, err
	}
	return parseCitation(doc, s), nil
}

// parseCitation reads a citation detail page into a raw record.
func parseCitation(doc *goquery.Document, s Stub) types.RawRecord {
	raw := types.RawRecord{
		Source: string(types.SourceGoogleScholar),
		StubID: s.ID,
	}

	title := doc.Find("#gsc_oci_title")
	raw.Bib.Title = strings.TrimSpace(title.Text())
	if href, ok := title.Find("a.gsc_oci_title_link").Attr("href"); ok {
		raw.PubURL = href
	}
	if href, ok := doc.Find("#gsc_oci_title_gg a").First().Attr("href"); ok {
		raw.EprintURL = href
	}

	doc.Find("#gsc_oci_table .gs_scl").Each(func(_ int, row *goquery.Selection) {
		field := strings.ToLower(strings.TrimSpace(row.Find(".gsc_oci_field").Text()))
		value := strings.TrimSpace(row.Find(".gsc_oci_value").Text())
		if value == "" {
			return
		}
		switch field {
		case "authors", "inventors":
			raw.Bib.Author = types.AuthorList(splitAuthors(value)...)
		case "publication date":
			year, _, _ := strings.Cut(value, "/")
			raw.Bib.PubYear = types.YearField(year)
		case "conference":
			raw.Bib.Venue = value
		case "journal":
			raw.Bib.Journal = value
		case "book", "source", "publisher":
			if raw.Bib.PubVenue == "" {
				raw.Bib.PubVenue = value
			}
		}
	})

	if raw.Bib.Title == "" {
		raw.ContainerType = s.Title
	}
	return raw
}

func splitAuthors(s string) []string {
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// citationID extracts the citation_for_view parameter from a publication
// link on the profile page.
func citationID(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get("citation_for_view")
}

// get waits for the rate limiter, fetches one page and parses it.
func (g *GoogleScholar) get(ctx context.Context, params url.Values) (*goquery.Document, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleScholarBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}
	if g.cookie != "" {
		req.Header.Set("Cookie", g.cookie)
	}

	resp, err := httputil.DoWithRetry(ctx, g.client, req, httputil.RetryPolicy{Log: g.log})
	if err != nil {
		return nil, fmt.Errorf("Google Scholar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google Scholar returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing Google Scholar page: %w", err)
	}
	if doc.Find("#gs_captcha_f, #captcha-form, #recaptcha").Length() > 0 {
		return nil, ErrBlocked
	}
	return doc, nil
}
