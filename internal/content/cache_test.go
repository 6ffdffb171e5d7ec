package content

import (
	"testing"
	"time"

	"github.com/wordwings/wordwings/internal/domain"
)

// memBlobStore keeps cache blobs in memory for tests.
type memBlobStore struct {
	payload   []byte
	fetchedAt time.Time
	saved     bool
}

func (s *memBlobStore) Save(key string, payload []byte, fetchedAt time.Time) error {
	s.payload = append([]byte(nil), payload...)
	s.fetchedAt = fetchedAt
	s.saved = true
	return nil
}

func (s *memBlobStore) Load(key string) ([]byte, time.Time, error) {
	if !s.saved {
		return nil, time.Time{}, domain.ErrNoCachedContent
	}
	return s.payload, s.fetchedAt, nil
}

func (s *memBlobStore) Delete(key string) error {
	s.payload, s.fetchedAt, s.saved = nil, time.Time{}, false
	return nil
}

func testCatalog() []domain.Content {
	return []domain.Content{
		{ID: "story-1", Title: "The Cat", Kind: "story", Tier: 1, Tags: []string{"animals"}},
		{ID: "story-2", Title: "The Rocket", Kind: "story", Tier: 2},
	}
}

func TestCache_EmptyStart(t *testing.T) {
	cache, err := NewCache(&memBlobStore{}, 0)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	if _, ok := cache.Get(); ok {
		t.Error("Get() reported an entry on an empty cache")
	}
	if cache.IsValid() {
		t.Error("IsValid() = true on an empty cache")
	}
}

func TestCache_RefreshAndTTL(t *testing.T) {
	cache, err := NewCache(&memBlobStore{}, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	clock := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }

	if err := cache.Refresh(testCatalog()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	items, ok := cache.Get()
	if !ok || len(items) != 2 {
		t.Fatalf("Get() = %v, %v", items, ok)
	}
	if !cache.IsValid() {
		t.Error("IsValid() = false right after Refresh")
	}

	clock = clock.Add(59 * time.Second)
	if !cache.IsValid() {
		t.Error("IsValid() = false inside the TTL window")
	}

	clock = clock.Add(2 * time.Second)
	if cache.IsValid() {
		t.Error("IsValid() = true past the TTL")
	}
	// Expired entries are still readable; freshness is the caller's call.
	if _, ok := cache.Get(); !ok {
		t.Error("Get() dropped the entry on expiry")
	}
}

func TestCache_PersistsAcrossRestart(t *testing.T) {
	store := &memBlobStore{}
	cache, err := NewCache(store, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Refresh(testCatalog()); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewCache(store, time.Minute)
	if err != nil {
		t.Fatalf("NewCache() on warm store error = %v", err)
	}
	items, ok := reopened.Get()
	if !ok || len(items) != 2 || items[0].ID != "story-1" {
		t.Errorf("reopened cache = %v, %v; want persisted catalog", items, ok)
	}
}

func TestCache_CorruptEntryDiscarded(t *testing.T) {
	store := &memBlobStore{payload: []byte("{not json"), fetchedAt: time.Now(), saved: true}
	cache, err := NewCache(store, time.Minute)
	if err != nil {
		t.Fatalf("NewCache() error = %v; corrupt entries should not fail startup", err)
	}
	if _, ok := cache.Get(); ok {
		t.Error("Get() returned an entry built from a corrupt payload")
	}
	if store.saved {
		t.Error("corrupt entry was left in the store")
	}
}

func TestCache_Invalidate(t *testing.T) {
	store := &memBlobStore{}
	cache, err := NewCache(store, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Refresh(testCatalog()); err != nil {
		t.Fatal(err)
	}
	if err := cache.Invalidate(); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if _, ok := cache.Get(); ok {
		t.Error("Get() returned an entry after Invalidate")
	}
	if store.saved {
		t.Error("Invalidate left the persisted entry behind")
	}
}
