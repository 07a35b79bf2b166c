// Package cache is a single-file, TTL-expiring key-value store for research
// results. Entries are regenerable, so concurrent writers to the same key
// resolve as last-write-wins.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrMiss is returned when a key is absent or its entry has expired.
var ErrMiss = errors.New("cache miss")

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER NOT NULL
);
`

// Store is a SQLite-backed cache. A zero TTL on Set means the entry never
// expires.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Get returns the cached value for key, or ErrMiss if absent or expired.
// Expired rows are deleted on read.
func (s *Store) Get(key string) ([]byte, error) {
	var row struct {
		Value     []byte `db:"value"`
		ExpiresAt int64  `db:"expires_at"`
	}
	err := s.db.Get(&row, `SELECT value, expires_at FROM entries WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if row.ExpiresAt > 0 && s.now().Unix() >= row.ExpiresAt {
		_, _ = s.db.Exec(`DELETE FROM entries WHERE key = ?`, key)
		return nil, ErrMiss
	}
	return row.Value, nil
}

// Set stores value under key with the given TTL, replacing any existing
// entry.
func (s *Store) Set(key string, value []byte, ttl time.Duration) error {
	var expires int64
	if ttl > 0 {
		expires = s.now().Add(ttl).Unix()
	}
	_, err := s.db.Exec(
		`INSERT INTO entries (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expires,
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Expire deletes every expired entry and returns the number removed.
func (s *Store) Expire() (int, error) {
	res, err := s.db.Exec(`DELETE FROM entries WHERE expires_at > 0 AND expires_at <= ?`, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("cache expire: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
