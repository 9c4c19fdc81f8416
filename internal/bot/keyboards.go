package bot

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xaenox/movie-bot/internal/conversation"
)

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonHelp),
			tgbotapi.NewKeyboardButton(buttonHistory),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonByName),
			tgbotapi.NewKeyboardButton(buttonByRating),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonLowBudget),
			tgbotapi.NewKeyboardButton(buttonHighBudget),
		),
	)
	keyboard.OneTimeKeyboard = true
	return keyboard
}

func backToMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonMainMenu),
		),
	)
	keyboard.OneTimeKeyboard = true
	return keyboard
}

func ratingKeyboard() tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, 3)
	for low := 1; low <= 10; low += 5 {
		row := make([]tgbotapi.KeyboardButton, 0, 5)
		for n := low; n < low+5; n++ {
			row = append(row, tgbotapi.NewKeyboardButton(strconv.Itoa(n)))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(buttonMainMenu),
	))
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.OneTimeKeyboard = true
	return keyboard
}

func sortOrderKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Min -> Max"),
			tgbotapi.NewKeyboardButton("Max -> Min"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonMainMenu),
		),
	)
	keyboard.OneTimeKeyboard = true
	return keyboard
}

func paginationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️Предыдущая страница", "prev_page"),
			tgbotapi.NewInlineKeyboardButtonData("➡️Следующая страница", "next_page"),
		),
	)
}

// keyboardFor maps the state machine's keyboard hint to a markup value,
// keeping Telegram types out of the conversation package.
func keyboardFor(k conversation.Keyboard) interface{} {
	switch k {
	case conversation.KeyboardMainMenu:
		return backToMenuKeyboard()
	case conversation.KeyboardRatings:
		return ratingKeyboard()
	case conversation.KeyboardSortOrder:
		return sortOrderKeyboard()
	}
	return nil
}
