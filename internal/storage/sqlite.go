package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/xaenox/movie-bot/internal/models"
)

// SQLiteHistory persists history in a local SQLite file. This is the
// default backend.
type SQLiteHistory struct {
	db *sql.DB
}

func NewSQLiteHistory(path string) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	storage := &SQLiteHistory{db: db}
	if err := storage.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return storage, nil
}

func (s *SQLiteHistory) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		movie_name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		rating REAL NOT NULL DEFAULT 0,
		year INTEGER NOT NULL DEFAULT 0,
		genres TEXT NOT NULL DEFAULT '',
		age_rating TEXT NOT NULL DEFAULT '',
		poster_url TEXT NOT NULL DEFAULT '',
		search_type TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_history_user_created
		ON history (user_id, created_at);`)
	return err
}

func (s *SQLiteHistory) SaveEntry(ctx context.Context, entry *models.HistoryEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO history (user_id, movie_name, description, rating, year, genres,
			age_rating, poster_url, search_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID,
		entry.MovieName,
		entry.Description,
		entry.Rating,
		entry.Year,
		entry.Genres,
		entry.AgeRating,
		entry.PosterURL,
		string(entry.SearchType),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get history entry ID: %w", err)
	}
	entry.ID = id
	return nil
}

func (s *SQLiteHistory) GetEntriesByDate(ctx context.Context, userID int64, from, to time.Time) ([]*models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, movie_name, description, rating, year, genres,
			age_rating, poster_url, search_type, created_at
		FROM history
		WHERE user_id = ? AND created_at >= ? AND created_at <= ?
		ORDER BY created_at`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		entry := &models.HistoryEntry{}
		var searchType string
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.MovieName,
			&entry.Description,
			&entry.Rating,
			&entry.Year,
			&entry.Genres,
			&entry.AgeRating,
			&entry.PosterURL,
			&searchType,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entry.SearchType = models.SearchType(searchType)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *SQLiteHistory) Close() error {
	return s.db.Close()
}
