package session

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	record    Record
	expiresAt time.Time
}

type expirationEntry struct {
	key       string
	expiresAt time.Time
}

type expirationHeap []expirationEntry

func (h expirationHeap) Len() int {
	return len(h)
}

func (h expirationHeap) Less(i, j int) bool {
	return h[i].expiresAt.Before(h[j].expiresAt)
}

func (h expirationHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *expirationHeap) Push(x any) {
	*h = append(*h, x.(expirationEntry))
}

func (h *expirationHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// MemoryStore keeps records in process memory with optional expiry.
type MemoryStore struct {
	TTL time.Duration

	mu          sync.RWMutex
	records     map[string]memoryEntry
	expirations expirationHeap
	now         func() time.Time
}

// NewMemoryStore creates an in-memory store. A zero ttl never expires
// records.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		TTL:     ttl,
		records: map[string]memoryEntry{},
		now:     time.Now,
	}
}

// Get returns the record stored at key, if any.
func (s *MemoryStore) Get(_ context.Context, key string) (Record, bool, error) {
	now := s.now()
	s.maybeCleanup(now)

	s.mu.RLock()
	entry, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return Record{}, false, nil
	}
	if s.isExpired(entry, now) {
		s.mu.Lock()
		entry, ok = s.records[key]
		if ok && s.isExpired(entry, now) {
			delete(s.records, key)
		}
		s.mu.Unlock()
		return Record{}, false, nil
	}
	return entry.record, true, nil
}

// Set stores a record at key, refreshing its expiry.
func (s *MemoryStore) Set(_ context.Context, key string, record Record) error {
	now := s.now()
	entry := memoryEntry{record: record}

	s.mu.Lock()
	s.cleanupExpiredLocked(now)
	if s.TTL > 0 {
		entry.expiresAt = now.Add(s.TTL)
		heap.Push(&s.expirations, expirationEntry{key: key, expiresAt: entry.expiresAt})
	}
	s.records[key] = entry
	s.mu.Unlock()
	return nil
}

// Delete removes the record at key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.records, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) maybeCleanup(now time.Time) {
	if s.TTL <= 0 {
		return
	}
	s.mu.RLock()
	needsCleanup := len(s.expirations) > 0 && !s.expirations[0].expiresAt.After(now)
	s.mu.RUnlock()
	if !needsCleanup {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupExpiredLocked(now)
}

func (s *MemoryStore) cleanupExpiredLocked(now time.Time) {
	if s.TTL <= 0 {
		return
	}
	for len(s.expirations) > 0 {
		entry := s.expirations[0]
		if entry.expiresAt.After(now) {
			break
		}
		heap.Pop(&s.expirations)
		stored, ok := s.records[entry.key]
		if !ok {
			continue
		}
		if !stored.expiresAt.Equal(entry.expiresAt) {
			// Re-set since this heap entry was pushed; a newer entry
			// covers the key.
			continue
		}
		if s.isExpired(stored, now) {
			delete(s.records, entry.key)
		}
	}
}

func (s *MemoryStore) isExpired(entry memoryEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)
}
