package kinopoisk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xaenox/movie-bot/internal/models"
	"go.uber.org/zap"
)

const docsResponse = `{"docs": [
	{"name": "The Matrix", "description": "wake up", "year": 1999,
	 "genres": [{"name": "боевик"}, {"name": "фантастика"}],
	 "rating": {"kp": 8.5}, "ageRating": 16,
	 "budget": {"value": 63000000, "currency": "$"},
	 "poster": {"url": "https://example.com/matrix.jpg"}},
	{"name": "Матрица", "year": 1999, "rating": {"kp": 8.5}},
	{"name": "Inception", "year": 2010, "rating": {"kp": 8.6}}
]}`

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request, *HTTPClient) {
	t.Helper()
	var captured http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	client := NewHTTPClient(server.URL, "test-key", zap.NewNop())
	return server, &captured, client
}

func TestSearchByNameFiltersToSubstringMatches(t *testing.T) {
	_, req, client := newTestServer(t, http.StatusOK, docsResponse)

	movies, err := client.SearchByName(context.Background(), "matrix", 10, 1)
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}

	// Upstream full-text match is looser than a substring match; only
	// names actually containing the query survive.
	if len(movies) != 1 || movies[0].Name != "The Matrix" {
		t.Fatalf("movies = %+v, want only The Matrix", movies)
	}

	if req.URL.Path != "/search" {
		t.Errorf("path = %q, want /search", req.URL.Path)
	}
	q := req.URL.Query()
	if q.Get("query") != "matrix" || q.Get("limit") != "10" || q.Get("page") != "1" {
		t.Errorf("query params = %v", q)
	}
	if req.Header.Get("X-API-KEY") != "test-key" {
		t.Errorf("missing API key header")
	}
}

func TestSearchByNameTruncatesToLimit(t *testing.T) {
	body := `{"docs": [
		{"name": "Matrix One", "year": 1999, "rating": {"kp": 1}},
		{"name": "Matrix Two", "year": 2000, "rating": {"kp": 2}},
		{"name": "Matrix Three", "year": 2001, "rating": {"kp": 3}}
	]}`
	_, _, client := newTestServer(t, http.StatusOK, body)

	movies, err := client.SearchByName(context.Background(), "Matrix", 2, 1)
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(movies) != 2 {
		t.Errorf("len = %d, want 2 (truncated to limit)", len(movies))
	}
}

func TestSearchByRatingParams(t *testing.T) {
	_, req, client := newTestServer(t, http.StatusOK, `{"docs": []}`)

	_, err := client.SearchByRating(context.Background(), 3, 9, models.SortDescending, 5, 2)
	if err != nil {
		t.Fatalf("SearchByRating: %v", err)
	}

	q := req.URL.Query()
	if got := q.Get("rating.kp"); got != "3 - 9" {
		t.Errorf("rating.kp = %q, want %q", got, "3 - 9")
	}
	if q.Get("sortField") != "rating.kp" || q.Get("sortType") != "-1" {
		t.Errorf("sort params = %v", q)
	}
	if q.Get("limit") != "5" || q.Get("page") != "2" {
		t.Errorf("paging params = %v", q)
	}
}

func TestSearchByBudgetParams(t *testing.T) {
	_, req, client := newTestServer(t, http.StatusOK, `{"docs": []}`)

	_, err := client.SearchByBudget(context.Background(), models.SortAscending, 7, 3)
	if err != nil {
		t.Fatalf("SearchByBudget: %v", err)
	}

	q := req.URL.Query()
	if q.Get("sortField") != "budget.value" || q.Get("sortType") != "1" {
		t.Errorf("sort params = %v", q)
	}
	if q.Get("budget.value") != "10000-10e20" {
		t.Errorf("budget bound = %q", q.Get("budget.value"))
	}
	if q.Get("rating.kp") != "1-10" {
		t.Errorf("rating bound = %q", q.Get("rating.kp"))
	}
}

func TestRequiredFieldFiltersSentOnEveryRequest(t *testing.T) {
	_, req, client := newTestServer(t, http.StatusOK, `{"docs": []}`)

	if _, err := client.SearchByBudget(context.Background(), models.SortAscending, 1, 1); err != nil {
		t.Fatalf("SearchByBudget: %v", err)
	}

	q := req.URL.Query()
	wantSelect := map[string]bool{}
	for _, f := range q["selectFields"] {
		wantSelect[f] = true
	}
	for _, f := range []string{"name", "description", "year", "genres", "rating", "ageRating", "budget", "poster"} {
		if !wantSelect[f] {
			t.Errorf("selectFields missing %q", f)
		}
	}
	wantNotNull := map[string]bool{}
	for _, f := range q["notNullFields"] {
		wantNotNull[f] = true
	}
	for _, f := range []string{"name", "year", "description", "rating.kp", "genres.name", "ageRating", "budget.value", "poster.url"} {
		if !wantNotNull[f] {
			t.Errorf("notNullFields missing %q", f)
		}
	}
}

func TestDocDecoding(t *testing.T) {
	_, _, client := newTestServer(t, http.StatusOK, docsResponse)

	movies, err := client.SearchByRating(context.Background(), 1, 10, models.SortAscending, 10, 1)
	if err != nil {
		t.Fatalf("SearchByRating: %v", err)
	}
	if len(movies) != 3 {
		t.Fatalf("len = %d, want 3", len(movies))
	}

	m := movies[0]
	if m.Name != "The Matrix" || m.Year != 1999 || m.Rating != 8.5 {
		t.Errorf("basic fields: %+v", m)
	}
	if len(m.Genres) != 2 || m.Genres[0] != "боевик" {
		t.Errorf("genres: %v", m.Genres)
	}
	if m.AgeRating == nil || *m.AgeRating != 16 {
		t.Errorf("age rating: %v", m.AgeRating)
	}
	if m.Budget == nil || m.Budget.Value != 63000000 || m.Budget.Currency != "$" {
		t.Errorf("budget: %+v", m.Budget)
	}
	if m.PosterURL != "https://example.com/matrix.jpg" {
		t.Errorf("poster: %q", m.PosterURL)
	}

	// Absent nested objects stay nil/empty.
	if movies[1].AgeRating != nil || movies[1].Budget != nil || movies[1].PosterURL != "" {
		t.Errorf("optional fields not empty: %+v", movies[1])
	}
}

func TestBadStatusReturnsError(t *testing.T) {
	_, _, client := newTestServer(t, http.StatusForbidden, `{"message": "invalid token"}`)

	if _, err := client.SearchByName(context.Background(), "x", 1, 1); err == nil {
		t.Error("expected error on non-200 status")
	}
}

func TestTransportErrorReturnsError(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1", "k", zap.NewNop())
	if _, err := client.SearchByName(context.Background(), "x", 1, 1); err == nil {
		t.Error("expected error on connection failure")
	}
}
