package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wordwings/wordwings/internal/domain"
)

// CacheStore persists cache blobs with their fetch timestamp. It lives in
// its own table so clearing the cache never discards progress or pending
// writes.
type CacheStore struct {
	db *DB
}

// NewCacheStore creates a new SQLite-backed cache store.
func NewCacheStore(db *DB) *CacheStore {
	return &CacheStore{db: db}
}

// Save stores a blob under key, replacing any previous entry.
func (s *CacheStore) Save(key string, payload []byte, fetchedAt time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO content_cache (key, payload, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			payload=excluded.payload,
			fetched_at=excluded.fetched_at`,
		key, payload, fetchedAt,
	)
	if err != nil {
		return fmt.Errorf("save cache entry: %w", err)
	}
	return nil
}

// Load returns the blob and fetch timestamp for key.
func (s *CacheStore) Load(key string) ([]byte, time.Time, error) {
	var payload []byte
	var fetchedAt time.Time
	err := s.db.QueryRow(
		"SELECT payload, fetched_at FROM content_cache WHERE key = ?", key,
	).Scan(&payload, &fetchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, domain.ErrNoCachedContent
		}
		return nil, time.Time{}, fmt.Errorf("load cache entry: %w", err)
	}
	return payload, fetchedAt, nil
}

// Delete removes the entry for key, if present.
func (s *CacheStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM content_cache WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}
