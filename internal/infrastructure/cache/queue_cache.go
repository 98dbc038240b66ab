package cache

import (
	"sort"
	"sync"

	"marketgate/internal/domain/assessment"
	"marketgate/internal/ports"
)

// MemoryQueueCache is the orchestrator's read-optimized view of the review
// queue. It is only ever written after a successful persisted transition,
// so its contents may go stale but never run ahead of the store.
type MemoryQueueCache struct {
	mu      sync.RWMutex
	entries map[string]ports.QueueEntry
}

var _ ports.QueueCache = (*MemoryQueueCache)(nil)

func NewMemoryQueueCache() *MemoryQueueCache {
	return &MemoryQueueCache{
		entries: make(map[string]ports.QueueEntry),
	}
}

func (c *MemoryQueueCache) ReplaceAll(entries []ports.QueueEntry) {
	next := make(map[string]ports.QueueEntry, len(entries))
	for _, entry := range entries {
		if entry.ProductID == "" {
			continue
		}
		next[entry.ProductID] = entry
	}

	c.mu.Lock()
	c.entries = next
	c.mu.Unlock()
}

func (c *MemoryQueueCache) Put(entry ports.QueueEntry) {
	if entry.ProductID == "" {
		return
	}

	c.mu.Lock()
	c.entries[entry.ProductID] = entry
	c.mu.Unlock()
}

func (c *MemoryQueueCache) Get(productID string) (ports.QueueEntry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[productID]
	c.mu.RUnlock()
	return entry, ok
}

func (c *MemoryQueueCache) ByStatus(status assessment.Status) []ports.QueueEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ports.QueueEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		if entry.Status == status {
			out = append(out, entry)
		}
	}
	sortEntries(out)
	return out
}

func (c *MemoryQueueCache) All() []ports.QueueEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ports.QueueEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		out = append(out, entry)
	}
	sortEntries(out)
	return out
}

// Newest submissions first, product id as tie-breaker for stable output.
func sortEntries(entries []ports.QueueEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].SubmittedAt != entries[j].SubmittedAt {
			return entries[i].SubmittedAt > entries[j].SubmittedAt
		}
		return entries[i].ProductID < entries[j].ProductID
	})
}
