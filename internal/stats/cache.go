package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // driver
)

const frameStatsSchema = `
CREATE TABLE IF NOT EXISTS frame_stats (
    tag    TEXT    NOT NULL,
    frame  INTEGER NOT NULL,
    value  REAL    NOT NULL,
    PRIMARY KEY (tag, frame)
);
`

// Cache is a SQLite-backed read-through cache in front of another Provider.
// Statistic extraction is the expensive native step, so values computed once
// survive across runs. There is no eviction; a dump for one episode is
// bounded by its frame count.
type Cache struct {
	db    *sql.DB
	inner Provider
}

// OpenCache opens (creating if needed) the cache database at path and wires
// it in front of inner.
func OpenCache(path string, inner Provider) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open stat cache %q: %w", path, err)
	}
	if _, err := db.Exec(frameStatsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init stat cache %q: %w", path, err)
	}
	return &Cache{db: db, inner: inner}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Stat implements [Provider]: cache hit, otherwise compute through the inner
// provider and persist. Errors from the inner provider are never cached.
func (c *Cache) Stat(ctx context.Context, tag Tag, n int) (float64, error) {
	var v float64
	err := c.db.QueryRowContext(ctx,
		`SELECT value FROM frame_stats WHERE tag = ? AND frame = ?`,
		string(tag), n,
	).Scan(&v)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("stat cache read: %w", err)
	}

	v, err = c.inner.Stat(ctx, tag, n)
	if err != nil {
		return 0, err
	}

	// Concurrent evaluations may race on the same frame; both compute the
	// same value, so the duplicate insert is ignored.
	if _, err := c.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO frame_stats (tag, frame, value) VALUES (?, ?, ?)`,
		string(tag), n, v,
	); err != nil {
		return 0, fmt.Errorf("stat cache write: %w", err)
	}
	return v, nil
}
