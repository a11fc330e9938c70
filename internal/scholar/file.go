// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

// FileSource replays raw records from a JSON file instead of the network.
// The author id is the file path; the file holds a JSON array of raw
// records. Useful for offline runs and for importing a saved dump.
type FileSource struct {
	records []types.RawRecord
	byStub  map[string]int
}

// Name returns the backend identifier.
func (f *FileSource) Name() string { return string(types.SourceFile) }

// Author reads the dump at path.
func (f *FileSource) Author(_ context.Context, path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var records []types.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return Profile{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	f.records = records
	f.byStub = make(map[string]int, len(records))
	for i := range records {
		f.byStub[stubID(records[i], i)] = i
	}
	return Profile{ID: path, Name: filepath.Base(path)}, nil
}

// Publications lists one stub per record in file order.
func (f *FileSource) Publications(_ context.Context, _ Profile) ([]Stub, error) {
	stubs := make([]Stub, len(f.records))
	for i, r := range f.records {
		stubs[i] = Stub{ID: stubID(r, i), Title: r.Bib.Title}
	}
	return stubs, nil
}

// Fill returns the record behind a stub.
func (f *FileSource) Fill(_ context.Context, s Stub) (types.RawRecord, error) {
	i, ok := f.byStub[s.ID]
	if !ok {
		return types.RawRecord{}, fmt.Errorf("no record %q in dump", s.ID)
	}
	return f.records[i], nil
}

func stubID(r types.RawRecord, i int) string {
	if r.StubID != "" {
		return r.StubID
	}
	return "#" + strconv.Itoa(i)
}
