package repository

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is a process-local cache. Entries expire after ttl, and once
// capacity is reached the oldest entry is evicted. A zero ttl or capacity
// disables that limit.
type MemoryCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	order    []string
	data     map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryCache(ttl time.Duration, capacity int) *MemoryCache {
	return &MemoryCache{
		ttl:      ttl,
		capacity: capacity,
		data:     make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return "", false
	}
	if m.expired(entry) {
		m.remove(key)
		return "", false
	}
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	if _, exists := m.data[key]; exists {
		m.remove(key)
	}
	m.data[key] = entry
	m.order = append(m.order, key)

	m.evictExpired()
	for m.capacity > 0 && len(m.order) > m.capacity {
		m.remove(m.order[0])
	}
	return nil
}

func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (m *MemoryCache) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}

// evictExpired drops expired entries from the front of the insertion order.
// Every entry shares one ttl, so order is also expiry order.
func (m *MemoryCache) evictExpired() {
	for len(m.order) > 0 && m.expired(m.data[m.order[0]]) {
		m.remove(m.order[0])
	}
}

func (m *MemoryCache) remove(key string) {
	delete(m.data, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}
