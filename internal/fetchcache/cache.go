// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetchcache keeps expanded scholar records in a SQLite database so
// repeated runs do not re-request publications that were already fetched.
// Profile sites throttle per-publication requests hard; with the cache a
// re-run only expands publications that are new or whose entry expired.
package fetchcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pamolchanov/pamolchanov.github.io/pkg/types"
)

// timeLayout is fixed-width so stored timestamps compare as strings.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Cache stores raw records keyed by source name and stub id.
type Cache struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the cache database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	c := &Cache{db: db, now: time.Now}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS raw_records (
			source TEXT NOT NULL,
			stub_id TEXT NOT NULL,
			fetched_at TEXT NOT NULL,
			record TEXT NOT NULL,
			PRIMARY KEY (source, stub_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_raw_records_fetched_at ON raw_records(fetched_at)`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Get returns the cached record for (source, stubID). A record older than
// maxAge counts as a miss; maxAge <= 0 accepts any age.
func (c *Cache) Get(ctx context.Context, source, stubID string, maxAge time.Duration) (types.RawRecord, bool, error) {
	var fetchedAt, data string
	err := c.db.QueryRowContext(ctx,
		`SELECT fetched_at, record FROM raw_records WHERE source = ? AND stub_id = ?`,
		source, stubID,
	).Scan(&fetchedAt, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return types.RawRecord{}, false, nil
	}
	if err != nil {
		return types.RawRecord{}, false, fmt.Errorf("querying cache: %w", err)
	}

	if maxAge > 0 {
		t, err := time.Parse(timeLayout, fetchedAt)
		if err != nil || c.now().Sub(t) > maxAge {
			return types.RawRecord{}, false, nil
		}
	}

	var rec types.RawRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return types.RawRecord{}, false, fmt.Errorf("decoding cached record %s/%s: %w", source, stubID, err)
	}
	return rec, true, nil
}

// Put stores rec under (source, stubID), replacing any previous entry.
func (c *Cache) Put(ctx context.Context, source, stubID string, rec types.RawRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO raw_records (source, stub_id, fetched_at, record) VALUES (?, ?, ?, ?)`,
		source, stubID, c.now().UTC().Format(timeLayout), string(data),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Prune deletes entries fetched before cutoff and returns how many went.
func (c *Cache) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM raw_records WHERE fetched_at < ?`,
		cutoff.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return res.RowsAffected()
}
