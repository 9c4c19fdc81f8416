package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xaenox/movie-bot/internal/conversation"
	"github.com/xaenox/movie-bot/internal/kinopoisk"
	"github.com/xaenox/movie-bot/internal/models"
	"github.com/xaenox/movie-bot/internal/search"
	"github.com/xaenox/movie-bot/internal/storage"
	"github.com/xaenox/movie-bot/pkg/prometheus"
	"go.uber.org/zap"
)

var defaultCommands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Запустить бота"},
	{Command: "help", Description: "Вывести справку"},
	{Command: "search_by_name", Description: "Поиск по названию"},
	{Command: "search_by_rating", Description: "Поиск по рейтингу"},
	{Command: "search_by_low_budget", Description: "Поиск с низким бюджетом"},
	{Command: "search_by_high_budget", Description: "Поиск с высоким бюджетом"},
	{Command: "history", Description: "Просмотр истории запросов"},
}

type Bot struct {
	api           *tgbotapi.BotAPI
	conversations *conversation.Store
	orchestrator  *search.Orchestrator
	history       storage.History
	logger        *zap.Logger
}

func New(token string, client kinopoisk.Client, history storage.History,
	conversations *conversation.Store, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		api:           api,
		conversations: conversations,
		history:       history,
		logger:        logger,
	}
	b.orchestrator = search.New(client, history, b, conversations, logger)
	return b, nil
}

func (b *Bot) Start() error {
	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(defaultCommands...)); err != nil {
		b.logger.Warn("Failed to register bot commands", zap.Error(err))
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		update := update
		userID, chatID, ok := updateKey(update)
		if !ok {
			continue
		}
		// Events for the same (user, chat) pair are serialized; other
		// pairs are handled concurrently.
		go b.conversations.Serialize(userID, chatID, func() {
			b.handleUpdate(context.Background(), update)
		})
	}

	return nil
}

func updateKey(update tgbotapi.Update) (userID, chatID int64, ok bool) {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.From.ID, update.CallbackQuery.Message.Chat.ID, true
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, update.Message.Chat.ID, true
	}
	return 0, 0, false
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}

	message := update.Message
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}
	b.handleText(ctx, message)
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	startTime := time.Now()
	defer func() {
		prometheus.CommandDuration.WithLabelValues(command).Observe(time.Since(startTime).Seconds())
	}()
	status := "success"
	defer func() {
		prometheus.CommandCounter.WithLabelValues(command, status).Inc()
	}()

	b.logger.Info("Command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
		zap.Int64("chat_id", message.Chat.ID))

	switch command {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	case "search_by_name":
		b.startFlow(message, conversation.StartByName)
	case "search_by_rating":
		b.startFlow(message, conversation.StartByRating)
	case "search_by_low_budget":
		b.startBudgetFlow(message, models.SortAscending)
	case "search_by_high_budget":
		b.startBudgetFlow(message, models.SortDescending)
	case "history":
		b.startFlow(message, conversation.StartHistory)
	default:
		status = "error"
		b.sendMessage(message.Chat.ID, "Неизвестная команда. Используйте /help, чтобы увидеть доступные команды.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	b.conversations.Clear(message.From.ID, message.Chat.ID)

	welcome := fmt.Sprintf("Добро пожаловать, %s! Я чат-бот для поиска фильмов и сериалов "+
		"на платформе КиноПоиск. Выбери, что ты хочешь сделать!", userName(message))
	msg := tgbotapi.NewMessage(message.Chat.ID, welcome)
	msg.ReplyMarkup = mainMenuKeyboard()
	b.send(msg, "text")
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	help := "Доступные команды:\n"
	for _, cmd := range defaultCommands {
		help += fmt.Sprintf("/%s - %s\n", cmd.Command, cmd.Description)
	}
	b.sendMessage(message.Chat.ID, help)
}

func (b *Bot) handleMainMenu(message *tgbotapi.Message) {
	// Universal transition: clears the conversation from any state.
	b.conversations.Clear(message.From.ID, message.Chat.ID)

	msg := tgbotapi.NewMessage(message.Chat.ID, "Выбери, что ты хочешь сделать!")
	msg.ReplyMarkup = mainMenuKeyboard()
	b.send(msg, "text")
}

func userName(message *tgbotapi.Message) string {
	if message.From == nil {
		return ""
	}
	name := message.From.FirstName
	if message.From.LastName != "" {
		name += " " + message.From.LastName
	}
	return name
}
