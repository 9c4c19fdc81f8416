package search

import (
	"context"

	"github.com/xaenox/movie-bot/internal/conversation"
	"github.com/xaenox/movie-bot/internal/kinopoisk"
	"github.com/xaenox/movie-bot/internal/models"
	"github.com/xaenox/movie-bot/internal/storage"
	"github.com/xaenox/movie-bot/pkg/prometheus"
	"go.uber.org/zap"
)

// MsgNothingFound is sent when a search ends with zero results, whatever
// the reason.
const MsgNothingFound = "Ничего не найдено"

// Presenter renders results back to the user. The bot's Telegram layer
// implements it; tests swap in a fake.
type Presenter interface {
	SendText(chatID int64, text string) error
	SendMovie(chatID int64, movie models.Movie) error
	SendPagination(chatID int64) error
}

// Orchestrator turns a completed parameter set plus a page number into
// an external search call, presentation and a history append.
type Orchestrator struct {
	client        kinopoisk.Client
	history       storage.History
	presenter     Presenter
	conversations *conversation.Store
	logger        *zap.Logger
}

func New(client kinopoisk.Client, history storage.History, presenter Presenter,
	conversations *conversation.Store, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		client:        client,
		history:       history,
		presenter:     presenter,
		conversations: conversations,
		logger:        logger,
	}
}

// PageFor computes the page for a pagination action relative to the last
// served page. "prev" never goes below page 1.
func PageFor(action string, served int) int {
	if served < 1 {
		served = 1
	}
	switch action {
	case "next_page":
		return served + 1
	case "prev_page":
		if served > 1 {
			return served - 1
		}
	}
	return 1
}

// Execute runs the search described by the conversation's stored
// parameters for the given page. Empty results and upstream failures
// share one path: the user sees "nothing found" and the conversation
// ends. On success the conversation keeps its parameters with the page
// cursor set to the page just served.
func (o *Orchestrator) Execute(ctx context.Context, userID, chatID int64, page int) {
	data, ok := o.conversations.Get(userID, chatID)
	if !ok || data.SearchType == "" {
		o.logger.Warn("Search requested without stored parameters",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID))
		return
	}

	movies := o.fetch(ctx, data, page)
	movies = dropNameless(movies, o.logger)

	if len(movies) == 0 {
		prometheus.SearchCounter.WithLabelValues(string(data.SearchType), "empty").Inc()
		if err := o.presenter.SendText(chatID, MsgNothingFound); err != nil {
			o.logger.Error("Failed to send empty-result message",
				zap.Error(err),
				zap.Int64("chat_id", chatID))
		}
		o.conversations.Clear(userID, chatID)
		return
	}
	prometheus.SearchCounter.WithLabelValues(string(data.SearchType), "found").Inc()

	for _, m := range movies {
		if err := o.presenter.SendMovie(chatID, m); err != nil {
			o.logger.Error("Failed to send movie",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
				zap.String("movie", m.Name))
		}
	}
	if err := o.presenter.SendPagination(chatID); err != nil {
		o.logger.Error("Failed to send pagination prompt",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}

	for _, m := range movies {
		entry := models.NewHistoryEntry(userID, m, data.SearchType)
		if err := o.history.SaveEntry(ctx, entry); err != nil {
			o.logger.Error("Failed to save history entry",
				zap.Error(err),
				zap.Int64("user_id", userID),
				zap.String("movie", m.Name))
		}
	}

	o.conversations.Update(userID, chatID, func(d *conversation.Data) {
		d.Page = page
	})
}

// fetch issues the variant-specific query. Any client failure degrades
// to an empty result set; the error is logged with request context and
// never surfaced to the user.
func (o *Orchestrator) fetch(ctx context.Context, data conversation.Data, page int) []models.Movie {
	var (
		movies []models.Movie
		err    error
	)
	switch data.SearchType {
	case models.SearchByName:
		movies, err = o.client.SearchByName(ctx, data.MovieName, data.Count, page)
	case models.SearchByRating:
		movies, err = o.client.SearchByRating(ctx, data.MinRating, data.MaxRating,
			data.SortOrder, data.Count, page)
	case models.SearchByBudget:
		movies, err = o.client.SearchByBudget(ctx, data.SortOrder, data.Count, page)
	}
	if err != nil {
		o.logger.Warn("Movie search failed, degrading to empty result",
			zap.Error(err),
			zap.String("search_type", string(data.SearchType)),
			zap.String("query", data.MovieName),
			zap.Int("page", page),
			zap.String("correlation_id", data.CorrelationID))
		return nil
	}
	return movies
}

func dropNameless(movies []models.Movie, logger *zap.Logger) []models.Movie {
	valid := movies[:0]
	for _, m := range movies {
		if m.Name == "" {
			logger.Info("Dropping movie record without a name")
			continue
		}
		valid = append(valid, m)
	}
	return valid
}
