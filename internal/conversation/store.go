package conversation

import (
	"sync"

	"github.com/google/uuid"
	"github.com/xaenox/movie-bot/internal/models"
	"github.com/xaenox/movie-bot/pkg/prometheus"
)

// Data is the accumulated parameter set of one in-flight conversation.
// It exists only between a flow-starting command and its terminal or
// cleared condition.
type Data struct {
	CorrelationID string
	State         State
	SearchType    models.SearchType
	MovieName     string
	MinRating     int
	MaxRating     int
	SortOrder     models.SortDirection
	Count         int
	Page          int
}

type key struct {
	userID int64
	chatID int64
}

// Store holds per-(user, chat) conversation data in process memory.
// Get/Update/Clear are safe for concurrent use; Serialize provides the
// per-key event lock that keeps same-conversation events in order. A
// restart loses all in-flight conversations.
type Store struct {
	mu            sync.RWMutex
	conversations map[key]*Data

	locksMu sync.Mutex
	locks   map[key]*sync.Mutex
}

func NewStore() *Store {
	return &Store{
		conversations: make(map[key]*Data),
		locks:         make(map[key]*sync.Mutex),
	}
}

// Get returns a snapshot of the conversation, if one exists.
func (s *Store) Get(userID, chatID int64) (Data, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if d, ok := s.conversations[key{userID, chatID}]; ok {
		return *d, true
	}
	return Data{}, false
}

// Update mutates the conversation under the store lock, creating it with
// a fresh correlation ID if absent.
func (s *Store) Update(userID, chatID int64, fn func(*Data)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{userID, chatID}
	d, ok := s.conversations[k]
	if !ok {
		d = &Data{CorrelationID: uuid.New().String()}
		s.conversations[k] = d
		prometheus.ActiveConversations.Inc()
	}
	fn(d)
}

// Clear destroys the conversation.
func (s *Store) Clear(userID, chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{userID, chatID}
	if _, ok := s.conversations[k]; ok {
		delete(s.conversations, k)
		prometheus.ActiveConversations.Dec()
	}
}

// Serialize runs fn while holding the event lock for (userID, chatID).
// Events for the same pair are processed one at a time; different pairs
// proceed concurrently. Lock entries are never reclaimed, which is fine
// for the bot's user population.
func (s *Store) Serialize(userID, chatID int64, fn func()) {
	l := s.lockFor(key{userID, chatID})
	l.Lock()
	defer l.Unlock()
	fn()
}

func (s *Store) lockFor(k key) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	l, ok := s.locks[k]
	if !ok {
		l = &sync.Mutex{}
		s.locks[k] = l
	}
	return l
}
