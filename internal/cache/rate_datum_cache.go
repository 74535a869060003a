package cache

import (
	"sync"

	"github.com/google/uuid"

	"github.com/fintrackd/fintrack_backend/internal/core/domain"
)

// RateDatumCache is an append-only cache of rate datums keyed by owner.
// The resolver only writes through it; rate reads stay on the store.
type RateDatumCache struct {
	mu    sync.RWMutex
	items map[uuid.UUID][]domain.CurrencyRateDatum
}

// NewRateDatumCache creates a cache with room for capacity owners before growth.
func NewRateDatumCache(capacity int) *RateDatumCache {
	return &RateDatumCache{
		items: make(map[uuid.UUID][]domain.CurrencyRateDatum, capacity),
	}
}

// Register appends a datum to its owner's list.
func (c *RateDatumCache) Register(entry domain.CurrencyRateDatum) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[entry.OwnerID] = append(c.items[entry.OwnerID], entry)
}

// OwnerDatums returns a copy of the owner's cached datums.
func (c *RateDatumCache) OwnerDatums(ownerID uuid.UUID) []domain.CurrencyRateDatum {
	c.mu.RLock()
	defer c.mu.RUnlock()
	datums := c.items[ownerID]
	out := make([]domain.CurrencyRateDatum, len(datums))
	copy(out, datums)
	return out
}
