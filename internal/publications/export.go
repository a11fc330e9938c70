// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pamolchanov/pamolchanov.github.io/internal/fsutil"
	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

// ExportEntry is the YAML form of a publication, for static site
// generators that read data files as YAML.
type ExportEntry struct {
	ID      string            `yaml:"id"`
	Title   string            `yaml:"title"`
	Authors string            `yaml:"authors,omitempty"`
	Venue   string            `yaml:"venue,omitempty"`
	Year    *int              `yaml:"year,omitempty"`
	Links   map[string]string `yaml:"links,omitempty"`
	Tags    []string          `yaml:"tags,omitempty"`
	Extra   map[string]any    `yaml:"extra,omitempty"`
}

// WriteYAML encodes pubs as a YAML list to w.
func WriteYAML(pubs []types.Publication, w io.Writer) error {
	entries := make([]ExportEntry, len(pubs))
	for i, p := range pubs {
		e, err := toExportEntry(p)
		if err != nil {
			return fmt.Errorf("exporting %q: %w", p.Title, err)
		}
		entries[i] = e
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(entries)
}

// ExportYAML writes pubs as YAML to path.
func ExportYAML(pubs []types.Publication, path string) error {
	var buf bytes.Buffer
	if err := WriteYAML(pubs, &buf); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return fsutil.WriteFileAtomic(path, buf.Bytes())
}

func toExportEntry(p types.Publication) (ExportEntry, error) {
	e := ExportEntry{
		ID:      p.ID,
		Title:   p.Title,
		Authors: p.Authors,
		Venue:   p.Venue,
		Year:    p.Year,
		Links:   p.Links,
		Tags:    p.Tags,
	}
	if len(p.Extra) == 0 {
		return e, nil
	}

	keys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	e.Extra = make(map[string]any, len(keys))
	for _, k := range keys {
		var v any
		if err := json.Unmarshal(p.Extra[k], &v); err != nil {
			return ExportEntry{}, fmt.Errorf("field %s: %w", k, err)
		}
		e.Extra[k] = v
	}
	return e, nil
}
