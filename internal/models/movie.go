package models

// SearchType tags which query variant produced a result set.
type SearchType string

const (
	SearchByName   SearchType = "name"
	SearchByRating SearchType = "rating"
	SearchByBudget SearchType = "budget"
)

// SortDirection uses the Kinopoisk sortType wire values.
type SortDirection int

const (
	SortAscending  SortDirection = 1
	SortDescending SortDirection = -1
)

// Budget is a movie production budget as reported upstream.
type Budget struct {
	Value    int64  `json:"value"`
	Currency string `json:"currency"`
}

// Movie is one record returned by the search API. Name is the only
// field guaranteed non-empty; records without it are dropped before
// rendering or persisting.
type Movie struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	Year        int      `json:"year"`
	Genres      []string `json:"genres"`
	AgeRating   *int     `json:"age_rating,omitempty"`
	Budget      *Budget  `json:"budget,omitempty"`
	PosterURL   string   `json:"poster_url,omitempty"`
}
