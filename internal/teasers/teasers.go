// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package teasers points featured papers at their teaser images. Images
// live in one directory, named after the paper identifier.
package teasers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/pamolchanov/pamolchanov.github.io/internal/fsutil"
	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

// Extensions lists the image extensions probed for each identifier, in
// priority order: the first one found wins.
var Extensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// Change records one rewritten image pointer.
type Change struct {
	ID       string
	OldImage string
	NewImage string
}

// Find returns the site-relative path of the teaser image for id, probing
// Extensions in order. It reports false when no image exists.
func Find(id string, cfg types.TeaserConfig) (string, bool) {
	for _, ext := range Extensions {
		name := id + ext
		if _, err := os.Stat(filepath.Join(cfg.TeasersDir, name)); err == nil {
			return path.Join(cfg.WebPrefix, name), true
		}
	}
	return "", false
}

// Update points every entry of details at its teaser image, visiting
// identifiers in sorted order. Entries whose pointer already matches, or
// that have no image, are left alone. Each rewrite is printed to w.
func Update(details types.FeaturedDetails, cfg types.TeaserConfig, w io.Writer) []Change {
	ids := make([]string, 0, len(details))
	for id := range details {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var changes []Change
	for _, id := range ids {
		image, ok := Find(id, cfg)
		if !ok {
			continue
		}
		d := details[id]
		if d == nil {
			d = &types.FeaturedDetail{}
			details[id] = d
		}
		if d.Image == image {
			continue
		}
		changes = append(changes, Change{ID: id, OldImage: d.Image, NewImage: image})
		fmt.Fprintf(w, "Updated %s: %s -> %s\n", id, d.Image, image)
		d.Image = image
	}
	return changes
}

// Load reads the featured details file.
func Load(path string) (types.FeaturedDetails, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var details types.FeaturedDetails
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if details == nil {
		details = types.FeaturedDetails{}
	}
	return details, nil
}

// Save writes details as JSON indented two spaces.
func Save(path string, details types.FeaturedDetails) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(details); err != nil {
		return fmt.Errorf("marshaling featured details: %w", err)
	}
	return fsutil.WriteFileAtomic(path, buf.Bytes())
}

// Run loads the details file, updates image pointers, and writes the file
// back only when something changed. It returns the changes made.
func Run(cfg types.TeaserConfig, w io.Writer) ([]Change, error) {
	details, err := Load(cfg.DetailsPath)
	if err != nil {
		return nil, err
	}

	changes := Update(details, cfg, w)
	if len(changes) == 0 {
		fmt.Fprintln(w, "No teaser images found to update")
		fmt.Fprintf(w, "Add image files to %s directory\n", cfg.TeasersDir)
		return nil, nil
	}

	if err := Save(cfg.DetailsPath, details); err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "\nUpdated %d teaser images\n", len(changes))
	return changes, nil
}
