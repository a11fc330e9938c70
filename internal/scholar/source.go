// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar fetches an author's publications from a scholar profile
// and normalizes them into the website's publication shape.
//
// A Source works in three steps, mirroring how profile sites expose data:
// look up the author profile, list the publication stubs on it, then expand
// each stub into a full RawRecord. Scrape drives those steps and tolerates
// per-item failures.
package scholar

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

// Profile is an author profile as returned by Source.Author.
type Profile struct {
	// ID is the backend's author identifier.
	ID string

	// Name is the author's display name, "" when the backend has none.
	Name string
}

// Stub is a publication entry on a profile before expansion.
type Stub struct {
	// ID identifies the publication on the backend; Fill uses it.
	ID string

	// Title is the title as listed on the profile, possibly truncated.
	Title string
}

// Source fetches publications from one backend.
type Source interface {
	// Name returns the backend identifier (e.g. "google_scholar").
	Name() string

	// Author looks up the profile for an author id.
	Author(ctx context.Context, id string) (Profile, error)

	// Publications lists the publication stubs of a profile.
	Publications(ctx context.Context, p Profile) ([]Stub, error)

	// Fill expands one stub into a full raw record.
	Fill(ctx context.Context, s Stub) (types.RawRecord, error)
}

// New builds the Source selected by cfg.Source. Unknown kinds are an error.
// w receives transport-level notices such as rate-limit backoffs.
func New(cfg types.ScholarConfig, w io.Writer) (Source, error) {
	client := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Source {
	case types.SourceGoogleScholar, "":
		return NewGoogleScholar(client, cfg, w), nil
	case types.SourceSemanticScholar:
		return &SemanticScholar{
			Client:    client,
			APIKey:    cfg.SemanticScholarAPIKey,
			UserAgent: cfg.UserAgent,
			Log:       w,
		}, nil
	case types.SourceFile:
		return &FileSource{}, nil
	default:
		return nil, fmt.Errorf("unknown scholar source %q (want %s, %s or %s)",
			cfg.Source, types.SourceGoogleScholar, types.SourceSemanticScholar, types.SourceFile)
	}
}
