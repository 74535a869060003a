// Package cache holds the process-wide write-through caches shared by all
// requests. Entries are appended on every successful read or write and never
// evicted; each cache is guarded by its own lock, taken only for the scope of
// a single append or scan so it is never held across database I/O.
package cache

import (
	"sync"

	"github.com/google/uuid"

	"github.com/fintrackd/fintrack_backend/internal/core/domain"
)

// CurrencyCache is an append-only, owner-multiplexed cache of currencies.
type CurrencyCache struct {
	mu    sync.RWMutex
	items []domain.Currency
}

// NewCurrencyCache creates a cache with room for capacity entries before growth.
func NewCurrencyCache(capacity int) *CurrencyCache {
	return &CurrencyCache{
		items: make([]domain.Currency, 0, capacity),
	}
}

// Register appends a currency to the cache.
func (c *CurrencyCache) Register(entry domain.Currency) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, entry)
}

// FindBase returns a copy of the owner's base currency, if cached.
func (c *CurrencyCache) FindBase(ownerID uuid.UUID) *domain.Currency {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.items {
		if c.items[i].IsBase && c.items[i].OwnerID == ownerID {
			found := c.items[i]
			return &found
		}
	}
	return nil
}

// FindByID returns a copy of the owner's currency with the given id, if cached.
func (c *CurrencyCache) FindByID(ownerID, currencyID uuid.UUID) *domain.Currency {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.items {
		if c.items[i].ID == currencyID && c.items[i].OwnerID == ownerID {
			found := c.items[i]
			return &found
		}
	}
	return nil
}

// Len reports the number of cached entries.
func (c *CurrencyCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
