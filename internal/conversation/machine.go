package conversation

import (
	"strconv"
	"strings"
	"time"

	"github.com/xaenox/movie-bot/internal/models"
)

// State is where a conversation currently is in its dialogue flow.
type State int

const (
	StateIdle State = iota
	StateAwaitingMovieName
	StateAwaitingResultCount
	StateAwaitingMinRating
	StateAwaitingMaxRating
	StateAwaitingSortOrder
	StateAwaitingDate
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingMovieName:
		return "awaiting_movie_name"
	case StateAwaitingResultCount:
		return "awaiting_result_count"
	case StateAwaitingMinRating:
		return "awaiting_min_rating"
	case StateAwaitingMaxRating:
		return "awaiting_max_rating"
	case StateAwaitingSortOrder:
		return "awaiting_sort_order"
	case StateAwaitingDate:
		return "awaiting_date"
	}
	return "unknown"
}

// Keyboard tells the delivery layer which reply keyboard to attach.
// The machine stays free of any Telegram types.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardMainMenu
	KeyboardRatings
	KeyboardSortOrder
)

// Action is what the caller must do after a step.
type Action int

const (
	// ActionPrompt: send Reply and wait for the next input.
	ActionPrompt Action = iota
	// ActionSearch: the flow reached its terminal state, run the search
	// with page 1.
	ActionSearch
	// ActionHistory: render the history for Date.
	ActionHistory
)

// Result of feeding one input into the machine.
type Result struct {
	Action   Action
	Reply    string
	Keyboard Keyboard
	Date     time.Time
}

const (
	PromptMovieName   = "Введите название фильма или сериала, который вы хотите найти:"
	PromptResultCount = "Сколько результатов вывести на экран?"
	PromptBudgetCount = "Введите количество фильмов, которые вы хотите вывести (от 1 до 100):"
	PromptMinRating   = "Пожалуйста, введите минимальное значение рейтинга (от 1 до 10), чтобы начать поиск фильмов по рейтингу:"
	PromptMaxRating   = "Пожалуйста, введите максимальное значение рейтинга (от 1 до 10):"
	PromptSortOrder   = "Пожалуйста, выберите сортировку рейтинга:"
	PromptDate        = "Пожалуйста, введите дату поиска в формате YYYY-MM-DD."

	msgCountInvalid    = "Пожалуйста, введите целое число от 1 до 100."
	msgCountRange      = "Значение должно быть от 1 до 100."
	msgRatingInvalid   = "Некорректный ввод рейтинга. Значение рейтинга должно быть от 1 до 10."
	msgRatingOrder     = "Максимальное значение рейтинга должно быть больше минимального значения. Пожалуйста, введите минимальный и максимальный рейтинг заново."
	msgSortOrderChoice = "Пожалуйста, выберите значение из предложенных кнопок."
	msgDateFormat      = "Пожалуйста, введите дату в формате YYYY-MM-DD."
	msgDateFuture      = "Дата не может быть в будущем."
)

// StartByName resets the conversation into the by-name flow.
func StartByName(d *Data) Result {
	reset(d, StateAwaitingMovieName, models.SearchByName)
	return Result{Action: ActionPrompt, Reply: PromptMovieName, Keyboard: KeyboardMainMenu}
}

// StartByRating resets the conversation into the by-rating flow.
func StartByRating(d *Data) Result {
	reset(d, StateAwaitingMinRating, models.SearchByRating)
	return Result{Action: ActionPrompt, Reply: PromptMinRating, Keyboard: KeyboardRatings}
}

// StartByBudget resets the conversation into the by-budget flow. The
// sort direction is fixed by the command that started the flow.
func StartByBudget(d *Data, sort models.SortDirection) Result {
	reset(d, StateAwaitingResultCount, models.SearchByBudget)
	d.SortOrder = sort
	return Result{Action: ActionPrompt, Reply: PromptBudgetCount, Keyboard: KeyboardMainMenu}
}

// StartHistory resets the conversation into the history-lookup flow.
func StartHistory(d *Data) Result {
	reset(d, StateAwaitingDate, "")
	return Result{Action: ActionPrompt, Reply: PromptDate, Keyboard: KeyboardMainMenu}
}

func reset(d *Data, state State, searchType models.SearchType) {
	*d = Data{
		CorrelationID: d.CorrelationID,
		State:         state,
		SearchType:    searchType,
	}
}

type stepFunc func(d *Data, input string, now time.Time) Result

// transitions maps each awaiting state to its step handler. A handler
// either re-prompts in place (invalid input: no state advance, no
// parameter mutation) or stores the validated value and advances.
var transitions = map[State]stepFunc{
	StateAwaitingMovieName:   stepMovieName,
	StateAwaitingResultCount: stepResultCount,
	StateAwaitingMinRating:   stepMinRating,
	StateAwaitingMaxRating:   stepMaxRating,
	StateAwaitingSortOrder:   stepSortOrder,
	StateAwaitingDate:        stepDate,
}

// Step feeds one user input into the machine for the conversation's
// current state. Inputs in StateIdle are not the machine's business.
func Step(d *Data, input string, now time.Time) (Result, bool) {
	fn, ok := transitions[d.State]
	if !ok {
		return Result{}, false
	}
	return fn(d, strings.TrimSpace(input), now), true
}

func stepMovieName(d *Data, input string, _ time.Time) Result {
	if input == "" {
		return Result{Action: ActionPrompt, Reply: PromptMovieName, Keyboard: KeyboardMainMenu}
	}
	d.MovieName = input
	d.State = StateAwaitingResultCount
	return Result{Action: ActionPrompt, Reply: PromptResultCount, Keyboard: KeyboardMainMenu}
}

func stepResultCount(d *Data, input string, _ time.Time) Result {
	count, err := strconv.Atoi(input)
	if err != nil {
		return Result{Action: ActionPrompt, Reply: msgCountInvalid, Keyboard: KeyboardMainMenu}
	}
	if count < 1 || count > 100 {
		return Result{Action: ActionPrompt, Reply: msgCountRange, Keyboard: KeyboardMainMenu}
	}
	d.Count = count
	d.Page = 1
	return Result{Action: ActionSearch}
}

func stepMinRating(d *Data, input string, _ time.Time) Result {
	rating, ok := parseRating(input)
	if !ok {
		return Result{Action: ActionPrompt, Reply: msgRatingInvalid, Keyboard: KeyboardRatings}
	}
	d.MinRating = rating
	d.State = StateAwaitingMaxRating
	return Result{Action: ActionPrompt, Reply: PromptMaxRating, Keyboard: KeyboardRatings}
}

func stepMaxRating(d *Data, input string, _ time.Time) Result {
	rating, ok := parseRating(input)
	if !ok {
		return Result{Action: ActionPrompt, Reply: msgRatingInvalid, Keyboard: KeyboardRatings}
	}
	if rating <= d.MinRating {
		// Not a hard failure: restart the range input.
		d.State = StateAwaitingMinRating
		return Result{
			Action:   ActionPrompt,
			Reply:    msgRatingOrder + "\n" + PromptMinRating,
			Keyboard: KeyboardRatings,
		}
	}
	d.MaxRating = rating
	d.State = StateAwaitingSortOrder
	return Result{Action: ActionPrompt, Reply: PromptSortOrder, Keyboard: KeyboardSortOrder}
}

func stepSortOrder(d *Data, input string, _ time.Time) Result {
	switch strings.ToLower(input) {
	case "min -> max":
		d.SortOrder = models.SortAscending
	case "max -> min":
		d.SortOrder = models.SortDescending
	default:
		return Result{Action: ActionPrompt, Reply: msgSortOrderChoice, Keyboard: KeyboardSortOrder}
	}
	d.State = StateAwaitingResultCount
	return Result{Action: ActionPrompt, Reply: PromptResultCount, Keyboard: KeyboardMainMenu}
}

func stepDate(d *Data, input string, now time.Time) Result {
	date, err := time.Parse("2006-01-02", input)
	if err != nil {
		return Result{Action: ActionPrompt, Reply: msgDateFormat, Keyboard: KeyboardMainMenu}
	}
	if date.After(now) {
		return Result{Action: ActionPrompt, Reply: msgDateFuture, Keyboard: KeyboardMainMenu}
	}
	return Result{Action: ActionHistory, Date: date}
}

func parseRating(input string) (int, bool) {
	rating, err := strconv.Atoi(input)
	if err != nil || rating < 1 || rating > 10 {
		return 0, false
	}
	return rating, true
}
