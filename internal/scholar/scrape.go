// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"
	"io"

	"github.com/pamolchanov/pamolchanov.github.io/internal/publications"
	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

// ScrapeResult holds the outcome of a Scrape run.
type ScrapeResult struct {
	Profile      Profile
	Publications []types.Publication

	// Listed is the number of stubs found on the profile.
	Listed int
	// Failed counts stubs whose expansion failed.
	Failed int
	// Discarded counts expanded records without a usable title.
	Discarded int
}

// Scrape fetches and normalizes every publication of authorID.
//
// A failure to look up the profile or to list its publications aborts the
// run. A stub that fails to expand is reported on warn as
// "warning: failed to fill publication <index>: <err>" and skipped; the
// rest of the batch proceeds. Records without a title are dropped silently.
func Scrape(ctx context.Context, src Source, authorID string, warn io.Writer) (ScrapeResult, error) {
	var result ScrapeResult

	profile, err := src.Author(ctx, authorID)
	if err != nil {
		return result, fmt.Errorf("looking up author %s on %s: %w", authorID, src.Name(), err)
	}
	result.Profile = profile

	stubs, err := src.Publications(ctx, profile)
	if err != nil {
		return result, fmt.Errorf("listing publications of %s on %s: %w", authorID, src.Name(), err)
	}
	result.Listed = len(stubs)

	result.Publications = make([]types.Publication, 0, len(stubs))
	for i, stub := range stubs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		raw, err := src.Fill(ctx, stub)
		if err != nil {
			fmt.Fprintf(warn, "warning: failed to fill publication %d: %v\n", i, err)
			result.Failed++
			continue
		}

		pub, ok := publications.Normalize(raw)
		if !ok {
			result.Discarded++
			continue
		}
		result.Publications = append(result.Publications, pub)
	}
	return result, nil
}
