// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publications

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pamolchanov/pamolchanov.github.io/internal/fsutil"
	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	Keyword        string    `yaml:"keyword,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// WriteCSL encodes pubs as a CSL-YAML list to w.
func WriteCSL(pubs []types.Publication, w io.Writer) error {
	items := make([]CSLItem, len(pubs))
	for i, p := range pubs {
		items[i] = toCSLItem(p)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// ExportCSL writes pubs as CSL-YAML to path.
func ExportCSL(pubs []types.Publication, path string) error {
	var buf bytes.Buffer
	if err := WriteCSL(pubs, &buf); err != nil {
		return fmt.Errorf("marshaling CSL: %w", err)
	}
	return fsutil.WriteFileAtomic(path, buf.Bytes())
}

// toCSLItem converts a Publication to a CSLItem. Preprint servers map to
// the "article" type, everything else with a venue to a journal article.
func toCSLItem(p types.Publication) CSLItem {
	item := CSLItem{
		ID:             p.ID,
		Type:           cslType(p.Venue),
		Title:          p.Title,
		ContainerTitle: p.Venue,
		Keyword:        strings.Join(p.Tags, ", "),
	}

	for _, a := range strings.Split(p.Authors, ",") {
		if name := parseAuthorName(a); name != (CSLName{}) {
			item.Author = append(item.Author, name)
		}
	}

	if p.Year != nil {
		item.Issued = &CSLDate{DateParts: [][]int{{*p.Year}}}
	}

	if u, ok := p.Links["project"]; ok {
		item.URL = u
	} else if u, ok := p.Links["pdf"]; ok {
		item.URL = u
	}

	return item
}

func cslType(venue string) string {
	v := strings.ToLower(venue)
	switch {
	case v == "", strings.Contains(v, "arxiv"), strings.Contains(v, "preprint"):
		return "article"
	case strings.Contains(v, "conference"), strings.Contains(v, "proceedings"), strings.Contains(v, "workshop"):
		return "paper-conference"
	default:
		return "article-journal"
	}
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  strings.TrimSpace(name[:idx]),
		Family: name[idx+1:],
	}
}
