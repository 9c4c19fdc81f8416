package bot

import (
	"context"
	"time"

	"github.com/xaenox/movie-bot/internal/conversation"
	"github.com/xaenox/movie-bot/internal/models"
	"go.uber.org/zap"
)

const msgNoHistory = "У вас нет истории поиска на эту дату."

// sendHistory renders all history entries for the calendar day of date.
// The output is chunked at the message-size ceiling; a single record is
// never split across chunks. The conversation ends here either way.
func (b *Bot) sendHistory(ctx context.Context, userID, chatID int64, date time.Time) {
	defer b.conversations.Clear(userID, chatID)

	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	to := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999999999, date.Location())

	entries, err := b.history.GetEntriesByDate(ctx, userID, from, to)
	if err != nil {
		b.logger.Error("Failed to load history",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Time("date", date))
		b.sendWithKeyboard(chatID, msgNoHistory, conversation.KeyboardMainMenu)
		return
	}

	if len(entries) == 0 {
		b.sendWithKeyboard(chatID, msgNoHistory, conversation.KeyboardMainMenu)
		return
	}

	for _, chunk := range historyMessages(entries) {
		b.sendWithKeyboard(chatID, chunk, conversation.KeyboardMainMenu)
	}
}

// historyMessages renders entries into ready-to-send message chunks.
func historyMessages(entries []*models.HistoryEntry) []string {
	parts := make([]string, 0, len(entries)+1)
	parts = append(parts, historyHeader)
	for _, e := range entries {
		parts = append(parts, HistoryCaption(e)+historySeparator)
	}
	return ChunkMessages(parts, messageLimit)
}
