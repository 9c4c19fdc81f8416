package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xaenox/movie-bot/internal/conversation"
	"github.com/xaenox/movie-bot/internal/models"
	"github.com/xaenox/movie-bot/pkg/prometheus"
	"go.uber.org/zap"
)

// The bot is the search orchestrator's presenter.

func (b *Bot) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	return b.send(msg, "text")
}

// SendMovie sends one record as photo+caption, or as plain text with a
// "no poster" note when there is no poster URL.
func (b *Bot) SendMovie(chatID int64, movie models.Movie) error {
	caption := TruncateCaption(MovieCaption(movie))

	if movie.PosterURL == "" {
		return b.SendText(chatID, caption+noPosterSuffix)
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(movie.PosterURL))
	photo.Caption = caption
	return b.send(photo, "photo")
}

func (b *Bot) SendPagination(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Показать еще варианты?")
	msg.ReplyMarkup = paginationKeyboard()
	return b.send(msg, "text")
}

func (b *Bot) sendMessage(chatID int64, text string) {
	if err := b.SendText(chatID, text); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard conversation.Keyboard) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup := keyboardFor(keyboard); markup != nil {
		msg.ReplyMarkup = markup
	}
	if err := b.send(msg, "text"); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) send(c tgbotapi.Chattable, kind string) error {
	if _, err := b.api.Send(c); err != nil {
		return err
	}
	prometheus.MessagesSent.WithLabelValues(kind).Inc()
	return nil
}
