package models

import (
	"strconv"
	"strings"
	"time"
)

// Sentinels stored instead of NULLs, matching the persisted history format.
const (
	NoAgeRating = "Нет рейтинга"
	NoPoster    = "Нет постера"
)

// HistoryEntry is a flattened movie record persisted after a successful
// search. Entries are append-only: never mutated, never deleted.
type HistoryEntry struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	MovieName   string     `json:"movie_name"`
	Description string     `json:"description"`
	Rating      float64    `json:"rating"`
	Year        int        `json:"year"`
	Genres      string     `json:"genres"`
	AgeRating   string     `json:"age_rating"`
	PosterURL   string     `json:"poster_url"`
	SearchType  SearchType `json:"search_type"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewHistoryEntry flattens a movie for persistence.
func NewHistoryEntry(userID int64, m Movie, searchType SearchType) *HistoryEntry {
	ageRating := NoAgeRating
	if m.AgeRating != nil {
		ageRating = strconv.Itoa(*m.AgeRating)
	}
	posterURL := m.PosterURL
	if posterURL == "" {
		posterURL = NoPoster
	}
	return &HistoryEntry{
		UserID:      userID,
		MovieName:   m.Name,
		Description: m.Description,
		Rating:      m.Rating,
		Year:        m.Year,
		Genres:      strings.Join(m.Genres, ", "),
		AgeRating:   ageRating,
		PosterURL:   posterURL,
		SearchType:  searchType,
		CreatedAt:   time.Now(),
	}
}

// Movie reconstructs the record so history rendering can reuse the same
// caption formatting as live results.
func (e *HistoryEntry) Movie() Movie {
	m := Movie{
		Name:        e.MovieName,
		Description: e.Description,
		Rating:      e.Rating,
		Year:        e.Year,
	}
	if e.Genres != "" {
		parts := strings.Split(e.Genres, ",")
		m.Genres = make([]string, 0, len(parts))
		for _, p := range parts {
			m.Genres = append(m.Genres, strings.TrimSpace(p))
		}
	}
	if e.AgeRating != "" && e.AgeRating != NoAgeRating {
		if v, err := strconv.Atoi(e.AgeRating); err == nil {
			m.AgeRating = &v
		}
	}
	if e.PosterURL != "" && e.PosterURL != NoPoster {
		m.PosterURL = e.PosterURL
	}
	return m
}
