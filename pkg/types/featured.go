// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FeaturedDetails maps a featured-paper identifier to its display details,
// as stored in data/featured_details.json.
type FeaturedDetails map[string]*FeaturedDetail

// FeaturedDetail is the display record for one featured paper. Image is the
// only field the tools touch; everything else round-trips through Fields.
type FeaturedDetail struct {
	// Image is the site-relative path of the teaser image, "" when unset.
	Image string

	// Fields holds every other key of the record verbatim.
	Fields map[string]json.RawMessage
}

// MarshalJSON writes Fields plus the image key, keys sorted and HTML left
// unescaped.
func (d FeaturedDetail) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.Fields)+1)
	for k, v := range d.Fields {
		out[k] = v
	}
	var prev string
	raw, hadImage := d.Fields["image"]
	if hadImage && json.Unmarshal(raw, &prev) != nil && d.Image == "" {
		// Keep a non-string image value that nobody replaced.
		return marshalUnescaped(out)
	}
	if d.Image != "" || hadImage {
		img, err := json.Marshal(d.Image)
		if err != nil {
			return nil, err
		}
		out["image"] = img
	}
	return marshalUnescaped(out)
}

func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON splits the image key from the rest of the object. A
// non-string image value is treated as unset.
func (d *FeaturedDetail) UnmarshalJSON(data []byte) error {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	if all == nil {
		return fmt.Errorf("featured detail must be a JSON object")
	}
	*d = FeaturedDetail{Fields: all}
	if raw, ok := all["image"]; ok {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			d.Image = s
		}
	}
	return nil
}
