package storage

import (
	"context"
	"time"

	"github.com/xaenox/movie-bot/internal/models"
)

// History is the append-only store of previously shown movies. Entries
// are keyed by user; retention is unbounded. Implementations must be
// safe for concurrent appends from different conversations.
type History interface {
	SaveEntry(ctx context.Context, entry *models.HistoryEntry) error
	GetEntriesByDate(ctx context.Context, userID int64, from, to time.Time) ([]*models.HistoryEntry, error)
	Close() error
}
