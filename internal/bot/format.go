package bot

import (
	"fmt"
	"strings"

	"github.com/xaenox/movie-bot/internal/models"
)

const (
	// Telegram image-caption limit.
	captionLimit = 1024
	// Telegram text-message limit; history output is chunked to fit it.
	messageLimit = 4096

	historyHeader    = "История поиска:\n\n"
	historySeparator = "\n_______________________________________\n"
	noPosterSuffix   = "🖼Постер: Нет постера\n\n"
)

// MovieCaption renders one movie record. It is pure: live results and
// history re-renderings share it, so a persisted record formats the
// same way it did when first shown.
func MovieCaption(m models.Movie) string {
	genres := strings.Join(m.Genres, ", ")
	if genres == "" {
		genres = "Нет жанра"
	}

	ageRating := models.NoAgeRating
	if m.AgeRating != nil {
		ageRating = fmt.Sprintf("%d+", *m.AgeRating)
	}

	budget := "Нет данных"
	if m.Budget != nil {
		budget = strings.TrimSpace(fmt.Sprintf("%d %s", m.Budget.Value, m.Budget.Currency))
	}

	description := m.Description
	if description == "" {
		description = "Нет описания"
	}

	return fmt.Sprintf(
		"📽Название: %s\n"+
			"🎯Жанр: %s\n"+
			"💯Рейтинг: %.1f\n"+
			"🗓️Год выпуска: %d\n"+
			"🔞Возрастной рейтинг: %s\n"+
			"💰Бюджет: %s\n"+
			"🎬Описание: %s\n",
		m.Name, genres, m.Rating, m.Year, ageRating, budget, description,
	)
}

// TruncateCaption enforces the image-caption ceiling. Counts runes, not
// bytes: captions are mostly Cyrillic.
func TruncateCaption(caption string) string {
	runes := []rune(caption)
	if len(runes) <= captionLimit {
		return caption
	}
	return string(runes[:captionLimit])
}

// HistoryCaption is the long-form rendering used by the history view:
// the shared caption plus search metadata, with no caption cap.
func HistoryCaption(e *models.HistoryEntry) string {
	return MovieCaption(e.Movie()) +
		fmt.Sprintf("\n📅Время поиска: %s\n🆔ID пользователя: %d\n🔍Тип поиска: %s\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.UserID, e.SearchType)
}

// ChunkMessages packs parts into messages of at most limit runes,
// never splitting a part: a single oversized part becomes its own
// (oversized) chunk rather than being cut.
func ChunkMessages(parts []string, limit int) []string {
	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, part := range parts {
		partLen := len([]rune(part))
		if currentLen > 0 && currentLen+partLen > limit {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
		current.WriteString(part)
		currentLen += partLen
	}
	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
