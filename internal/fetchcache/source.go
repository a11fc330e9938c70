// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetchcache

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pamolchanov/pamolchanov.github.io/internal/scholar"
	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

// Source serves Fill from the cache and stores every live result. Author
// and Publications always go to the wrapped source so new publications
// show up.
type Source struct {
	next   scholar.Source
	cache  *Cache
	maxAge time.Duration
	warn   io.Writer

	Hits   int
	Misses int
}

// Wrap returns a caching Source over next. Cache faults are reported on
// warn and the call falls through to next.
func Wrap(next scholar.Source, cache *Cache, maxAge time.Duration, warn io.Writer) *Source {
	return &Source{next: next, cache: cache, maxAge: maxAge, warn: warn}
}

// Name returns the wrapped backend's name.
func (s *Source) Name() string { return s.next.Name() }

// Author delegates to the wrapped source.
func (s *Source) Author(ctx context.Context, id string) (scholar.Profile, error) {
	return s.next.Author(ctx, id)
}

// Publications delegates to the wrapped source.
func (s *Source) Publications(ctx context.Context, p scholar.Profile) ([]scholar.Stub, error) {
	return s.next.Publications(ctx, p)
}

// Fill returns the cached record for stub when fresh, otherwise fetches it
// and caches the result. Failed fetches are not cached.
func (s *Source) Fill(ctx context.Context, stub scholar.Stub) (types.RawRecord, error) {
	rec, ok, err := s.cache.Get(ctx, s.Name(), stub.ID, s.maxAge)
	if err != nil {
		fmt.Fprintf(s.warn, "warning: fetch cache: %v\n", err)
	}
	if ok {
		s.Hits++
		return rec, nil
	}

	s.Misses++
	rec, err = s.next.Fill(ctx, stub)
	if err != nil {
		return types.RawRecord{}, err
	}
	if err := s.cache.Put(ctx, s.Name(), stub.ID, rec); err != nil {
		fmt.Fprintf(s.warn, "warning: fetch cache: %v\n", err)
	}
	return rec, nil
}
