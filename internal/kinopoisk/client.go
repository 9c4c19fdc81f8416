package kinopoisk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xaenox/movie-bot/internal/models"
	"github.com/xaenox/movie-bot/pkg/prometheus"
	"go.uber.org/zap"
)

// Client issues the three search query variants against the movie API.
type Client interface {
	SearchByName(ctx context.Context, query string, limit, page int) ([]models.Movie, error)
	SearchByRating(ctx context.Context, minRating, maxRating int, sort models.SortDirection, limit, page int) ([]models.Movie, error)
	SearchByBudget(ctx context.Context, sort models.SortDirection, limit, page int) ([]models.Movie, error)
}

// Fields requested for every movie. Records missing any of notNullFields
// are excluded upstream.
var (
	selectFields = []string{
		"name", "description", "year", "genres", "rating", "ageRating", "budget", "poster",
	}
	notNullFields = []string{
		"name", "year", "description", "rating.kp", "genres.name",
		"ageRating", "budget.value", "poster.url",
	}
)

// HTTPClient talks to the Kinopoisk API over HTTP.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

func NewHTTPClient(baseURL, apiKey string, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// SearchByName queries the full-text endpoint, then narrows the looser
// upstream match to a case-insensitive substring match on the name and
// truncates to limit.
func (c *HTTPClient) SearchByName(ctx context.Context, query string, limit, page int) ([]models.Movie, error) {
	params := baseParams(limit, page)
	params.Set("query", query)

	movies, err := c.doRequest(ctx, "/search", params)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Movie, 0, len(movies))
	needle := strings.ToLower(query)
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Name), needle) {
			filtered = append(filtered, m)
		}
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func (c *HTTPClient) SearchByRating(ctx context.Context, minRating, maxRating int, sort models.SortDirection, limit, page int) ([]models.Movie, error) {
	params := baseParams(limit, page)
	params.Set("rating.kp", fmt.Sprintf("%d - %d", minRating, maxRating))
	params.Set("sortField", "rating.kp")
	params.Set("sortType", strconv.Itoa(int(sort)))

	return c.doRequest(ctx, "", params)
}

func (c *HTTPClient) SearchByBudget(ctx context.Context, sort models.SortDirection, limit, page int) ([]models.Movie, error) {
	params := baseParams(limit, page)
	params.Set("sortField", "budget.value")
	params.Set("sortType", strconv.Itoa(int(sort)))
	// Bounds exclude zero-budget records and anything without a rating.
	params.Set("budget.value", "10000-10e20")
	params.Set("rating.kp", "1-10")

	return c.doRequest(ctx, "", params)
}

func baseParams(limit, page int) url.Values {
	params := url.Values{}
	for _, f := range selectFields {
		params.Add("selectFields", f)
	}
	for _, f := range notNullFields {
		params.Add("notNullFields", f)
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("page", strconv.Itoa(page))
	return params
}

type movieDoc struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Year        int    `json:"year"`
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Rating struct {
		Kp float64 `json:"kp"`
	} `json:"rating"`
	AgeRating *int `json:"ageRating"`
	Budget    *struct {
		Value    int64  `json:"value"`
		Currency string `json:"currency"`
	} `json:"budget"`
	Poster *struct {
		URL string `json:"url"`
	} `json:"poster"`
}

func (c *HTTPClient) doRequest(ctx context.Context, endpoint string, params url.Values) ([]models.Movie, error) {
	const op = "kinopoisk.doRequest"

	reqURL := c.baseURL + endpoint + "?" + params.Encode()
	c.logger.Debug("Movie API request", zap.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Add("accept", "application/json")
	req.Header.Add("X-API-KEY", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		prometheus.APIFailures.WithLabelValues(endpointLabel(endpoint)).Inc()
		return nil, fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		prometheus.APIFailures.WithLabelValues(endpointLabel(endpoint)).Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s: bad status %d, response: %s", op, resp.StatusCode, body)
	}

	var result struct {
		Docs []movieDoc `json:"docs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}

	movies := make([]models.Movie, 0, len(result.Docs))
	for _, doc := range result.Docs {
		movies = append(movies, docToMovie(doc))
	}
	return movies, nil
}

func docToMovie(doc movieDoc) models.Movie {
	m := models.Movie{
		Name:        doc.Name,
		Description: doc.Description,
		Year:        doc.Year,
		Rating:      doc.Rating.Kp,
		AgeRating:   doc.AgeRating,
	}
	for _, g := range doc.Genres {
		if g.Name != "" {
			m.Genres = append(m.Genres, g.Name)
		}
	}
	if doc.Budget != nil {
		m.Budget = &models.Budget{Value: doc.Budget.Value, Currency: doc.Budget.Currency}
	}
	if doc.Poster != nil {
		m.PosterURL = doc.Poster.URL
	}
	return m
}

func endpointLabel(endpoint string) string {
	if endpoint == "/search" {
		return "search"
	}
	return "movie"
}
