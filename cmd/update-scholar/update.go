// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pamolchanov/pamolchanov.github.io/internal/config"
	"github.com/pamolchanov/pamolchanov.github.io/internal/fetchcache"
	"github.com/pamolchanov/pamolchanov.github.io/internal/publications"
	"github.com/pamolchanov/pamolchanov.github.io/internal/scholar"
	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

// sourceLabels are the display names used in progress output.
var sourceLabels = map[string]string{
	string(types.SourceGoogleScholar):   "Google Scholar",
	string(types.SourceSemanticScholar): "Semantic Scholar",
	string(types.SourceFile):            "file",
}

// updateScholar runs one load, fetch, merge and write cycle. Progress goes
// to stdout; warnings and transport notices go to stderr.
func updateScholar(ctx context.Context, cfg types.ScholarConfig, stdout, stderr io.Writer) error {
	if cfg.AuthorID == "" {
		return fmt.Errorf("no author id: pass --author, set scholar.author_id in %s.yaml, or set %s_SCHOLAR_AUTHOR_ID",
			config.Name, config.EnvPrefix)
	}

	src, err := scholar.New(cfg, stderr)
	if err != nil {
		return err
	}

	var cached *fetchcache.Source
	if cfg.CachePath != "" && src.Name() != string(types.SourceFile) {
		cache, err := fetchcache.Open(cfg.CachePath)
		if err != nil {
			return err
		}
		defer cache.Close()

		if cfg.CacheMaxAge > 0 {
			if _, err := cache.Prune(ctx, time.Now().Add(-cfg.CacheMaxAge)); err != nil {
				fmt.Fprintf(stderr, "warning: fetch cache: %v\n", err)
			}
		}
		cached = fetchcache.Wrap(src, cache, cfg.CacheMaxAge, stderr)
		src = cached
	}

	store := publications.NewStore(cfg.DataDir)
	existing, err := store.Load(stderr)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Loaded %d existing publications from %s\n", len(existing), store.Path())

	res, err := scholar.Scrape(ctx, src, cfg.AuthorID, stderr)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Scraped %d publications from %s\n", len(res.Publications), sourceLabel(src.Name()))
	if cached != nil {
		fmt.Fprintf(stdout, "Fetch cache: %d hits, %d misses\n", cached.Hits, cached.Misses)
	}

	merged := publications.Merge(existing, res.Publications)
	fmt.Fprintln(stdout, renderSummary(res, publications.Summarize(existing, res.Publications)))

	if cfg.DryRun {
		fmt.Fprintf(stdout, "Dry run: %d publications not written\n", len(merged))
		return nil
	}

	if err := store.Save(merged); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %d publications → %s\n", len(merged), store.Path())

	if cfg.ExportYAML != "" {
		if err := publications.ExportYAML(merged, cfg.ExportYAML); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Exported YAML → %s\n", cfg.ExportYAML)
	}
	if cfg.ExportCSL != "" {
		if err := publications.ExportCSL(merged, cfg.ExportCSL); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Exported CSL-YAML → %s\n", cfg.ExportCSL)
	}
	return nil
}

func sourceLabel(name string) string {
	if label, ok := sourceLabels[name]; ok {
		return label
	}
	return name
}
