// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawRecord is an expanded publication as delivered by a scholar source.
// Its shape follows the scholar profile record: bibliographic fields live
// under Bib, link fields sit at the top level. Only the fields below are
// read by the normalizer.
type RawRecord struct {
	// Source names the backend that produced the record (e.g. "google_scholar").
	Source string `json:"source,omitempty"`

	// StubID is the backend's identifier for the publication.
	StubID string `json:"stub_id,omitempty"`

	Bib RawBib `json:"bib"`

	// ContainerType is a descriptive fallback used when Bib.Title is empty.
	ContainerType string `json:"container_type,omitempty"`

	EprintURL    string `json:"eprint_url,omitempty"`
	PubURL       string `json:"pub_url,omitempty"`
	AuthorPubURL string `json:"author_pub_url,omitempty"`
}

// RawBib holds the bibliographic block of a RawRecord.
type RawBib struct {
	Title    string      `json:"title,omitempty"`
	Author   AuthorField `json:"author,omitempty"`
	Venue    string      `json:"venue,omitempty"`
	Journal  string      `json:"journal,omitempty"`
	PubVenue string      `json:"pubvenue,omitempty"`
	PubYear  YearField   `json:"pub_year,omitempty"`
	Year     YearField   `json:"year,omitempty"`
	Eprint   string      `json:"eprint,omitempty"`
	URL      string      `json:"url,omitempty"`
}

// AuthorField is the author entry of a raw record. Sources deliver either a
// list of names or a single preformatted string; any other JSON value is
// treated as absent.
type AuthorField struct {
	Names []string
	Text  string
}

// AuthorList returns an AuthorField holding a list of names.
func AuthorList(names ...string) AuthorField {
	return AuthorField{Names: append([]string{}, names...)}
}

// AuthorText returns an AuthorField holding one preformatted string.
func AuthorText(s string) AuthorField {
	return AuthorField{Text: s}
}

// IsList reports whether the field was delivered as a list.
func (a AuthorField) IsList() bool { return a.Names != nil }

// IsZero reports whether no author information is present.
func (a AuthorField) IsZero() bool { return a.Names == nil && a.Text == "" }

// MarshalJSON writes a list as a JSON array and text as a JSON string.
func (a AuthorField) MarshalJSON() ([]byte, error) {
	if a.Names != nil {
		return json.Marshal(a.Names)
	}
	if a.Text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(a.Text)
}

// UnmarshalJSON accepts a string or an array; a list element that is not a
// string is skipped.
func (a *AuthorField) UnmarshalJSON(data []byte) error {
	*a = AuthorField{}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		a.Text = t
	case []any:
		a.Names = make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				a.Names = append(a.Names, s)
			}
		}
	}
	return nil
}

// YearField is a year as found on the wire: usually a string, sometimes a
// number, sometimes garbage. Parsing happens in the normalizer.
type YearField string

// Int parses the year. Surrounding whitespace is ignored; anything that is
// not a base-10 integer reports false.
func (y YearField) Int() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(y)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// UnmarshalJSON accepts a JSON string or number.
func (y *YearField) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*y = YearField(t)
	case float64:
		if t == float64(int64(t)) {
			*y = YearField(strconv.FormatInt(int64(t), 10))
		} else {
			*y = YearField(strconv.FormatFloat(t, 'f', -1, 64))
		}
	default:
		*y = ""
	}
	return nil
}
