package content

import (
	"context"
	"log/slog"

	"github.com/wordwings/wordwings/internal/connectivity"
	"github.com/wordwings/wordwings/internal/domain"
)

// Lister is the backend catalog contract the service consumes.
type Lister interface {
	ListContent(ctx context.Context, filters domain.ContentFilters) ([]domain.Content, error)
}

// Freshness tells the UI what it is looking at: a listing straight from
// the backend, a still-valid cached one, or stale data served because the
// device is offline.
type Freshness string

const (
	FreshnessFresh  Freshness = "fresh"
	FreshnessCached Freshness = "cached"
	FreshnessStale  Freshness = "stale"
)

// Listing is a filtered catalog plus how fresh it is.
type Listing struct {
	Items     []domain.Content
	Freshness Freshness
}

// Service reads the catalog through the cache: valid cache wins, otherwise
// the backend is fetched and cached, and a failed fetch degrades to stale
// cached data rather than an empty result.
type Service struct {
	cache   *Cache
	remote  Lister
	monitor *connectivity.Monitor
	logger  *slog.Logger
}

// NewService wires the catalog read path.
func NewService(cache *Cache, remote Lister, monitor *connectivity.Monitor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cache: cache, remote: remote, monitor: monitor, logger: logger}
}

// Online reports the current connectivity status for UI layers.
func (s *Service) Online() bool {
	return s.monitor.Online()
}

// List serves the catalog, applying filters locally whenever the data
// comes out of the cache.
func (s *Service) List(ctx context.Context, filters domain.ContentFilters) (*Listing, error) {
	if s.cache.IsValid() {
		items, _ := s.cache.Get()
		return &Listing{Items: applyFilters(items, filters), Freshness: FreshnessCached}, nil
	}

	// The remote call filters server-side, but the cache always holds the
	// unfiltered catalog so later filtered reads can be served from it.
	items, err := s.remote.ListContent(ctx, domain.ContentFilters{})
	if err == nil {
		if cacheErr := s.cache.Refresh(items); cacheErr != nil {
			s.logger.Warn("failed to cache catalog", "error", cacheErr)
		}
		return &Listing{Items: applyFilters(items, filters), Freshness: FreshnessFresh}, nil
	}

	// Stale data beats no data for read-only content.
	if cached, ok := s.cache.Get(); ok {
		s.logger.Info("serving stale catalog",
			"online", s.monitor.Online(), "error", err)
		return &Listing{Items: applyFilters(cached, filters), Freshness: FreshnessStale}, nil
	}

	return nil, err
}

// Invalidate forces the next List to refetch.
func (s *Service) Invalidate() error {
	return s.cache.Invalidate()
}

func applyFilters(items []domain.Content, filters domain.ContentFilters) []domain.Content {
	filtered := make([]domain.Content, 0, len(items))
	for _, c := range items {
		if filters.Matches(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
