// Package content serves the lesson catalog through a TTL cache with
// offline fallback.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wordwings/wordwings/internal/domain"
)

// DefaultTTL is how long a fetched catalog stays fresh.
const DefaultTTL = 5 * time.Minute

const catalogKey = "catalog"

// Entry is one cached payload with its fetch timestamp.
type Entry[T any] struct {
	Payload   T
	FetchedAt time.Time
}

// BlobStore is the persistence behind the cache, so a cached catalog
// survives app restarts.
type BlobStore interface {
	Save(key string, payload []byte, fetchedAt time.Time) error
	Load(key string) ([]byte, time.Time, error)
	Delete(key string) error
}

// Cache is a TTL cache over the content catalog. Get never touches the
// network; staleness checks compare against an injectable clock.
type Cache struct {
	store BlobStore
	ttl   time.Duration
	now   func() time.Time

	mu    sync.RWMutex
	entry *Entry[[]domain.Content]
}

// NewCache creates a catalog cache, loading any persisted entry from a
// previous run. A zero ttl means DefaultTTL.
func NewCache(store BlobStore, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{store: store, ttl: ttl, now: time.Now}

	payload, fetchedAt, err := store.Load(catalogKey)
	if err != nil {
		if errors.Is(err, domain.ErrNoCachedContent) {
			return c, nil
		}
		return nil, err
	}
	var items []domain.Content
	if err := json.Unmarshal(payload, &items); err != nil {
		// A corrupt cache entry is not worth failing startup over.
		_ = store.Delete(catalogKey)
		return c, nil
	}
	c.entry = &Entry[[]domain.Content]{Payload: items, FetchedAt: fetchedAt}
	return c, nil
}

// Get returns the cached catalog without any freshness check. The second
// return is false when nothing has ever been cached.
func (c *Cache) Get() ([]domain.Content, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return nil, false
	}
	return c.entry.Payload, true
}

// IsValid reports whether an entry exists and is younger than the TTL.
func (c *Cache) IsValid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entry != nil && c.now().Sub(c.entry.FetchedAt) < c.ttl
}

// Refresh replaces the cached catalog and stamps it fetched now.
func (c *Cache) Refresh(items []domain.Content) error {
	fetchedAt := c.now()

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := c.store.Save(catalogKey, payload, fetchedAt); err != nil {
		return err
	}

	c.mu.Lock()
	c.entry = &Entry[[]domain.Content]{Payload: items, FetchedAt: fetchedAt}
	c.mu.Unlock()
	return nil
}

// Invalidate discards the cached catalog, in memory and on disk.
func (c *Cache) Invalidate() error {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
	return c.store.Delete(catalogKey)
}
