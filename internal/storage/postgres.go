package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/xaenox/movie-bot/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type PostgresHistory struct {
	db *sql.DB
}

func NewPostgresHistory(config PostgresConfig) (*PostgresHistory, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	storage := &PostgresHistory{db: db}

	// Initialize database schema
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}

	return storage, nil
}

func (s *PostgresHistory) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	return nil
}

func (s *PostgresHistory) SaveEntry(ctx context.Context, entry *models.HistoryEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO history (user_id, movie_name, description, rating, year, genres,
			age_rating, poster_url, search_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
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
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("error saving history entry: %w", err)
	}

	return nil
}

func (s *PostgresHistory) GetEntriesByDate(ctx context.Context, userID int64, from, to time.Time) ([]*models.HistoryEntry, error) {
	query := `
		SELECT id, user_id, movie_name, description, rating, year, genres,
			age_rating, poster_url, search_type, created_at
		FROM history
		WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying history: %w", err)
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
			return nil, fmt.Errorf("error scanning history entry: %w", err)
		}
		entry.SearchType = models.SearchType(searchType)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *PostgresHistory) Close() error {
	return s.db.Close()
}
