package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/xaenox/movie-bot/internal/models"
)

func intPtr(v int) *int { return &v }

func testMovie() models.Movie {
	return models.Movie{
		Name:        "The Matrix",
		Description: "Хакер Нео узнает правду о мире.",
		Rating:      8.5,
		Year:        1999,
		Genres:      []string{"боевик", "фантастика"},
		AgeRating:   intPtr(16),
		Budget:      &models.Budget{Value: 63000000, Currency: "$"},
		PosterURL:   "https://example.com/matrix.jpg",
	}
}

func TestMovieCaptionContents(t *testing.T) {
	caption := MovieCaption(testMovie())

	for _, want := range []string{
		"📽Название: The Matrix",
		"🎯Жанр: боевик, фантастика",
		"💯Рейтинг: 8.5",
		"🗓️Год выпуска: 1999",
		"🔞Возрастной рейтинг: 16+",
		"💰Бюджет: 63000000 $",
		"🎬Описание: Хакер Нео узнает правду о мире.",
	} {
		if !strings.Contains(caption, want) {
			t.Errorf("caption missing %q:\n%s", want, caption)
		}
	}
}

func TestMovieCaptionFallbacks(t *testing.T) {
	caption := MovieCaption(models.Movie{Name: "X", Year: 2000, Rating: 5})

	for _, want := range []string{
		"🎯Жанр: Нет жанра",
		"🔞Возрастной рейтинг: Нет рейтинга",
		"💰Бюджет: Нет данных",
		"🎬Описание: Нет описания",
	} {
		if !strings.Contains(caption, want) {
			t.Errorf("caption missing fallback %q:\n%s", want, caption)
		}
	}
}

func TestTruncateCaption(t *testing.T) {
	// Cyrillic characters make rune and byte counts diverge.
	long := strings.Repeat("ф", 2000)
	truncated := TruncateCaption(long)
	if got := len([]rune(truncated)); got != 1024 {
		t.Errorf("truncated length = %d runes, want 1024", got)
	}

	exact := strings.Repeat("ф", 1024)
	if TruncateCaption(exact) != exact {
		t.Error("caption of exactly 1024 runes must pass through unchanged")
	}

	short := "короткий текст"
	if TruncateCaption(short) != short {
		t.Error("short caption must pass through unchanged")
	}
}

// A record persisted to history and re-rendered must show the same name,
// rating, year and genre list as its live rendering.
func TestHistoryRoundTrip(t *testing.T) {
	movie := testMovie()
	live := strings.Split(MovieCaption(movie), "\n")

	entry := models.NewHistoryEntry(42, movie, models.SearchByName)
	replay := strings.Split(MovieCaption(entry.Movie()), "\n")

	// name, genres, rating, year
	for _, line := range []int{0, 1, 2, 3} {
		if live[line] != replay[line] {
			t.Errorf("line %d differs:\nlive:   %q\nreplay: %q", line, live[line], replay[line])
		}
	}
}

func TestHistoryCaptionMetadata(t *testing.T) {
	entry := models.NewHistoryEntry(42, testMovie(), models.SearchByRating)
	entry.CreatedAt = time.Date(2024, 6, 1, 15, 4, 0, 0, time.UTC)

	caption := HistoryCaption(entry)
	for _, want := range []string{
		"📅Время поиска: 2024-06-01 15:04",
		"🆔ID пользователя: 42",
		"🔍Тип поиска: rating",
	} {
		if !strings.Contains(caption, want) {
			t.Errorf("history caption missing %q:\n%s", want, caption)
		}
	}
}

func TestChunkMessagesNeverSplitsARecord(t *testing.T) {
	parts := []string{
		strings.Repeat("a", 3000),
		strings.Repeat("b", 2000),
		strings.Repeat("c", 2000),
	}
	chunks := ChunkMessages(parts, messageLimit)

	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if chunks[0] != parts[0] {
		t.Error("first chunk should hold only the first record")
	}
	if chunks[1] != parts[1]+parts[2] {
		t.Error("second chunk should hold the remaining records")
	}
	if strings.Join(chunks, "") != strings.Join(parts, "") {
		t.Error("chunking lost content")
	}
}

func TestChunkMessagesOversizedRecordStaysWhole(t *testing.T) {
	oversized := strings.Repeat("x", messageLimit+500)
	chunks := ChunkMessages([]string{"small", oversized, "tail"}, messageLimit)

	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}
	if chunks[1] != oversized {
		t.Error("oversized record must be its own whole chunk")
	}
}

func TestHistoryMessagesStartWithHeader(t *testing.T) {
	entries := []*models.HistoryEntry{
		models.NewHistoryEntry(42, testMovie(), models.SearchByName),
		models.NewHistoryEntry(42, testMovie(), models.SearchByBudget),
	}

	chunks := historyMessages(entries)
	if len(chunks) == 0 {
		t.Fatal("no chunks rendered")
	}
	if !strings.HasPrefix(chunks[0], historyHeader) {
		t.Errorf("first chunk missing header:\n%s", chunks[0])
	}
	joined := strings.Join(chunks, "")
	if got := strings.Count(joined, "📽Название:"); got != 2 {
		t.Errorf("rendered %d records, want 2", got)
	}
}

func TestChunkMessagesFitsInOne(t *testing.T) {
	chunks := ChunkMessages([]string{"a", "b", "c"}, messageLimit)
	if len(chunks) != 1 || chunks[0] != "abc" {
		t.Errorf("chunks = %q, want [abc]", chunks)
	}
}
