package storage

import (
	"context"
	"sync"
	"time"

	"github.com/xaenox/movie-bot/internal/models"
)

// MemoryHistory keeps history entries in process memory. Used for tests
// and development runs.
type MemoryHistory struct {
	mu      sync.RWMutex
	nextID  int64
	entries map[int64][]*models.HistoryEntry
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{
		nextID:  1,
		entries: make(map[int64][]*models.HistoryEntry),
	}
}

func (s *MemoryHistory) SaveEntry(ctx context.Context, entry *models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *entry
	stored.ID = s.nextID
	s.nextID++
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.entries[stored.UserID] = append(s.entries[stored.UserID], &stored)
	entry.ID = stored.ID
	return nil
}

func (s *MemoryHistory) GetEntriesByDate(ctx context.Context, userID int64, from, to time.Time) ([]*models.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.HistoryEntry
	for _, e := range s.entries[userID] {
		// Bounds are inclusive on both ends.
		if e.CreatedAt.Before(from) || e.CreatedAt.After(to) {
			continue
		}
		copied := *e
		result = append(result, &copied)
	}
	return result, nil
}

func (s *MemoryHistory) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
