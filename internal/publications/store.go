// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publications

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pamolchanov/pamolchanov.github.io/internal/fsutil"
	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

// Store reads and writes the publication list file.
type Store struct {
	path string
}

// NewStore returns a Store for dataDir/publications.json.
func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, types.PublicationsFile)}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// Load reads the persisted list. A missing file is an empty list. Every
// record must carry a title; tags are de-duplicated and nil links or tags
// become empty. Duplicate titles are reported on w and left in place.
func (s *Store) Load(w io.Writer) ([]types.Publication, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []types.Publication{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var pubs []types.Publication
	if err := json.Unmarshal(data, &pubs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if pubs == nil {
		pubs = []types.Publication{}
	}

	seen := make(map[string]int, len(pubs))
	for i := range pubs {
		p := &pubs[i]
		if TitleKey(p.Title) == "" {
			return nil, fmt.Errorf("%s: record %d has no title", s.path, i)
		}
		if p.Links == nil {
			p.Links = map[string]string{}
		}
		p.Tags = dedupTags(p.Tags)

		key := TitleKey(p.Title)
		if j, ok := seen[key]; ok {
			fmt.Fprintf(w, "warning: records %d and %d share the title %q; the later one is used when merging\n", j, i, p.Title)
		}
		seen[key] = i
	}
	return pubs, nil
}

// Save writes pubs as indented JSON. The file is written to a temporary
// name in the same directory and renamed into place.
func (s *Store) Save(pubs []types.Publication) error {
	if pubs == nil {
		pubs = []types.Publication{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pubs); err != nil {
		return fmt.Errorf("marshaling publications: %w", err)
	}

	return fsutil.WriteFileAtomic(s.path, buf.Bytes())
}

// dedupTags drops repeated tags, keeping the first occurrence.
func dedupTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
