package cache

import (
	"sync"
	"time"
)

type ttlEntry struct {
	value     interface{}
	expiresAt time.Time
}

// TTLMap is a thread-safe map whose entries expire after a fixed TTL.
type TTLMap struct {
	mu   sync.RWMutex
	data map[string]*ttlEntry
	ttl  time.Duration
}

func NewTTLMap(ttl time.Duration) *TTLMap {
	return &TTLMap{
		data: make(map[string]*ttlEntry),
		ttl:  ttl,
	}
}

// Get retrieves a value if it has not expired. Expired entries are
// removed lazily on access.
func (m *TTLMap) Get(key string) (interface{}, bool) {
	m.mu.RLock()
	entry, exists := m.data[key]
	m.mu.RUnlock()
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		if current, ok := m.data[key]; ok && time.Now().After(current.expiresAt) {
			delete(m.data, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

// SetIfAbsent stores the value unless a live entry already exists, and
// reports whether it stored. This is the dedupe primitive: the first
// caller wins, later callers within the TTL see false.
func (m *TTLMap) SetIfAbsent(key string, value interface{}) bool {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.data[key]; ok && now.Before(entry.expiresAt) {
		return false
	}
	m.data[key] = &ttlEntry{value: value, expiresAt: now.Add(m.ttl)}
	return true
}

// Set adds or refreshes a value.
func (m *TTLMap) Set(key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = &ttlEntry{value: value, expiresAt: time.Now().Add(m.ttl)}
}

// Delete removes a key.
func (m *TTLMap) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// Clear removes all entries.
func (m *TTLMap) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]*ttlEntry)
}
