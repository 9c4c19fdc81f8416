package bot

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xaenox/movie-bot/internal/conversation"
	"github.com/xaenox/movie-bot/internal/models"
	"github.com/xaenox/movie-bot/internal/search"
	"go.uber.org/zap"
)

// Main menu reply-button texts. Button presses arrive as plain text and
// are routed like their slash-command counterparts.
const (
	buttonHelp       = "Вывести справку"
	buttonHistory    = "История поиска"
	buttonByName     = "Поиск по названию"
	buttonByRating   = "Поиск по рейтингу"
	buttonLowBudget  = "Поиск с низким бюджетом"
	buttonHighBudget = "Поиск с высоким бюджетом"
	buttonMainMenu   = "Главное меню"
)

func (b *Bot) handleText(ctx context.Context, message *tgbotapi.Message) {
	text := strings.TrimSpace(message.Text)

	if strings.EqualFold(text, buttonMainMenu) {
		b.handleMainMenu(message)
		return
	}

	switch text {
	case buttonHelp:
		b.handleHelp(message)
		return
	case buttonHistory:
		b.startFlow(message, conversation.StartHistory)
		return
	case buttonByName:
		b.startFlow(message, conversation.StartByName)
		return
	case buttonByRating:
		b.startFlow(message, conversation.StartByRating)
		return
	case buttonLowBudget:
		b.startBudgetFlow(message, models.SortAscending)
		return
	case buttonHighBudget:
		b.startBudgetFlow(message, models.SortDescending)
		return
	}

	b.advanceConversation(ctx, message, text)
}

// advanceConversation feeds free-form text into the state machine. Text
// arriving with no conversation in progress just re-shows the menu.
func (b *Bot) advanceConversation(ctx context.Context, message *tgbotapi.Message, text string) {
	userID, chatID := message.From.ID, message.Chat.ID

	data, ok := b.conversations.Get(userID, chatID)
	if !ok || data.State == conversation.StateIdle {
		b.handleMainMenu(message)
		return
	}

	var (
		res     conversation.Result
		stepped bool
	)
	b.conversations.Update(userID, chatID, func(d *conversation.Data) {
		res, stepped = conversation.Step(d, text, time.Now())
	})
	if !stepped {
		b.handleMainMenu(message)
		return
	}

	b.logger.Info("Conversation step",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.String("state", data.State.String()),
		zap.String("correlation_id", data.CorrelationID))

	b.applyResult(ctx, userID, chatID, res)
}

func (b *Bot) applyResult(ctx context.Context, userID, chatID int64, res conversation.Result) {
	switch res.Action {
	case conversation.ActionPrompt:
		b.sendWithKeyboard(chatID, res.Reply, res.Keyboard)
	case conversation.ActionSearch:
		b.orchestrator.Execute(ctx, userID, chatID, 1)
	case conversation.ActionHistory:
		b.sendHistory(ctx, userID, chatID, res.Date)
	}
}

// startFlow supersedes any in-flight conversation with a fresh one.
func (b *Bot) startFlow(message *tgbotapi.Message, start func(*conversation.Data) conversation.Result) {
	var res conversation.Result
	b.conversations.Update(message.From.ID, message.Chat.ID, func(d *conversation.Data) {
		res = start(d)
	})
	b.sendWithKeyboard(message.Chat.ID, res.Reply, res.Keyboard)
}

func (b *Bot) startBudgetFlow(message *tgbotapi.Message, sort models.SortDirection) {
	b.startFlow(message, func(d *conversation.Data) conversation.Result {
		return conversation.StartByBudget(d, sort)
	})
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Error("Failed to answer callback query", zap.Error(err))
	}

	action := callback.Data
	if action != "next_page" && action != "prev_page" {
		return
	}

	userID, chatID := callback.From.ID, callback.Message.Chat.ID

	data, ok := b.conversations.Get(userID, chatID)
	if !ok || data.SearchType == "" {
		b.sendMessage(chatID, "Сначала выполните поиск. Выбери, что ты хочешь сделать!")
		return
	}

	page := search.PageFor(action, data.Page)
	b.logger.Info("Page change",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.String("action", action),
		zap.Int("page", page),
		zap.String("correlation_id", data.CorrelationID))

	b.orchestrator.Execute(ctx, userID, chatID, page)
}
