package store

import (
	"sync"
	"time"

	"github.com/AngelCh415/adpulse/internal/models"
)

// MemoryStore holds the current analytics snapshot. Replace is expected to
// be called by a single writer; readers may call Current concurrently.
type MemoryStore struct {
	mu        sync.RWMutex
	cur       models.Snapshot
	seq       uint64 // replacements since construction
	updatedAt time.Time
}

func NewMemoryStore(initial models.Snapshot, at time.Time) *MemoryStore {
	return &MemoryStore{cur: initial, updatedAt: at}
}

func (s *MemoryStore) Current() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Replace swaps in a new snapshot and returns its sequence number.
func (s *MemoryStore) Replace(snap models.Snapshot, at time.Time) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = snap
	s.seq++
	s.updatedAt = at
	return s.seq
}

func (s *MemoryStore) Seq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}

func (s *MemoryStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
