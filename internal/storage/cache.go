package storage

import (
	"context"
	"sync"
	"time"

	"github.com/avaliafor/avaliafor/internal/observability"
)

// DefaultExistenceTTL is how long a folder listing is trusted.
const DefaultExistenceTTL = 5 * time.Minute

// ExistenceCache answers "does folder/name exist" from one listing per
// folder. All listings are discarded together once the TTL has elapsed since
// the first was taken, or on Clear.
type ExistenceCache struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	loadedAt time.Time
	folders  map[string]map[string]bool
}

// NewExistenceCache creates a cache over repo.
func NewExistenceCache(repo Repository, ttl time.Duration) *ExistenceCache {
	if ttl <= 0 {
		ttl = DefaultExistenceTTL
	}
	return &ExistenceCache{
		repo:    repo,
		ttl:     ttl,
		now:     time.Now,
		folders: make(map[string]map[string]bool),
	}
}

// Exists reports whether name is in folder, listing the folder on a miss.
func (c *ExistenceCache) Exists(ctx context.Context, folder, name string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loadedAt.IsZero() && c.now().Sub(c.loadedAt) > c.ttl {
		c.folders = make(map[string]map[string]bool)
		c.loadedAt = time.Time{}
	}

	set, ok := c.folders[folder]
	if ok {
		observability.ExistenceLookups.WithLabelValues("hit").Inc()
		return set[name], nil
	}
	observability.ExistenceLookups.WithLabelValues("miss").Inc()

	files, err := c.repo.List(ctx, folder)
	if err != nil {
		return false, err
	}
	set = make(map[string]bool, len(files))
	for _, f := range files {
		set[f.Name] = true
	}
	c.folders[folder] = set
	if c.loadedAt.IsZero() {
		c.loadedAt = c.now()
	}
	return set[name], nil
}

// Clear drops every cached listing.
func (c *ExistenceCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.folders = make(map[string]map[string]bool)
	c.loadedAt = time.Time{}
}
