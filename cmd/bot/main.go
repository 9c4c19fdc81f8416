package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xaenox/movie-bot/internal/bot"
	"github.com/xaenox/movie-bot/internal/conversation"
	"github.com/xaenox/movie-bot/internal/kinopoisk"
	"github.com/xaenox/movie-bot/internal/storage"
	"github.com/xaenox/movie-bot/pkg/config"
	"github.com/xaenox/movie-bot/pkg/prometheus"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize history storage
	var history storage.History
	switch cfg.Database.Driver {
	case "memory":
		logger.Info("Using in-memory history storage")
		history = storage.NewMemoryHistory()
	case "postgres":
		logger.Info("Using PostgreSQL history storage")
		history, err = storage.NewPostgresHistory(storage.PostgresConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
	default:
		logger.Info("Using SQLite history storage", zap.String("path", cfg.Database.Path))
		history, err = storage.NewSQLiteHistory(cfg.Database.Path)
	}
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer history.Close()

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		prometheus.Init()
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				logger.Error("Metrics server stopped", zap.Error(err))
			}
		}()
		logger.Info("Serving metrics", zap.String("address", cfg.Metrics.Address))
	}

	conversations := conversation.NewStore()
	client := kinopoisk.NewHTTPClient(cfg.Kinopoisk.APIURL, cfg.Kinopoisk.APIKey, logger)

	// Initialize bot
	b, err := bot.New(cfg.Telegram.Token, client, history, conversations, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// Start the bot
	if err := b.Start(); err != nil {
		logger.Fatal("Bot error", zap.Error(err))
	}
}
