package conversation

import (
	"sync"
	"testing"
)

func TestStoreUpdateCreatesConversation(t *testing.T) {
	s := NewStore()

	if _, ok := s.Get(1, 10); ok {
		t.Fatal("Get returned a conversation before any Update")
	}

	s.Update(1, 10, func(d *Data) {
		d.State = StateAwaitingMovieName
	})

	d, ok := s.Get(1, 10)
	if !ok {
		t.Fatal("conversation missing after Update")
	}
	if d.State != StateAwaitingMovieName {
		t.Errorf("state = %v, want StateAwaitingMovieName", d.State)
	}
	if d.CorrelationID == "" {
		t.Error("correlation ID not assigned on creation")
	}

	// Get returns a snapshot, not shared memory.
	d.MovieName = "local change"
	stored, _ := s.Get(1, 10)
	if stored.MovieName != "" {
		t.Error("snapshot mutation leaked into the store")
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Update(1, 10, func(d *Data) { d.Count = 5 })
	s.Clear(1, 10)

	if _, ok := s.Get(1, 10); ok {
		t.Error("conversation still present after Clear")
	}

	// Clearing a missing conversation is a no-op.
	s.Clear(2, 20)
}

func TestStoreKeysAreIndependent(t *testing.T) {
	s := NewStore()
	s.Update(1, 10, func(d *Data) { d.MovieName = "first" })
	s.Update(1, 11, func(d *Data) { d.MovieName = "second" })
	s.Update(2, 10, func(d *Data) { d.MovieName = "third" })

	for _, tc := range []struct {
		userID, chatID int64
		want           string
	}{
		{1, 10, "first"},
		{1, 11, "second"},
		{2, 10, "third"},
	} {
		d, ok := s.Get(tc.userID, tc.chatID)
		if !ok || d.MovieName != tc.want {
			t.Errorf("Get(%d, %d) = %q, %v; want %q", tc.userID, tc.chatID, d.MovieName, ok, tc.want)
		}
	}
}

func TestSerializeIsMutuallyExclusivePerKey(t *testing.T) {
	s := NewStore()

	const workers = 100
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			s.Serialize(1, 10, func() {
				// Unsynchronized read-modify-write: only correct if
				// Serialize actually excludes other holders of the key.
				v := counter
				counter = v + 1
			})
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}
