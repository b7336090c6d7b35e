package session

import (
	"sync"
	"time"

	"github.com/pensign/cardroom/coordinator/types"
)

var _ Store = (*MemoryStore)(nil)

type memoryEntry struct {
	session  *types.SigningSession
	deadline time.Time
}

// MemoryStore is the single-instance session store: a TTL map with a
// janitor goroutine. Expiry is also checked lazily on Get so a session
// past its window is never handed out between janitor runs.
type MemoryStore struct {
	sync.Mutex
	entries    map[string]*memoryEntry
	ttl        time.Duration
	onEviction EvictionHandler

	stop chan struct{}
	done chan struct{}
}

func NewMemoryStore(ttl time.Duration, onEviction EvictionHandler) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &MemoryStore{
		entries:    make(map[string]*memoryEntry),
		ttl:        ttl,
		onEviction: onEviction,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go s.janitor()

	return s
}

func (s *MemoryStore) Get(roomToken string) (*types.SigningSession, bool, error) {
	s.Lock()
	entry, ok := s.entries[roomToken]
	if !ok {
		s.Unlock()
		return nil, false, nil
	}

	if time.Now().After(entry.deadline) {
		delete(s.entries, roomToken)
		s.Unlock()
		s.fireEviction(roomToken, entry)
		return nil, false, nil
	}
	s.Unlock()

	return entry.session, true, nil
}

// Put overwrites any existing entry for the token and resets the
// sliding expiration window.
func (s *MemoryStore) Put(roomToken string, session *types.SigningSession) error {
	s.Lock()
	defer s.Unlock()

	s.entries[roomToken] = &memoryEntry{
		session:  session,
		deadline: time.Now().Add(s.ttl),
	}

	return nil
}

// Rename moves a session under a new key, used when a provisional room
// token is replaced by a durable one. The move never counts as an
// eviction.
func (s *MemoryStore) Rename(oldToken, newToken string) error {
	s.Lock()
	defer s.Unlock()

	entry, ok := s.entries[oldToken]
	if !ok {
		return nil
	}

	delete(s.entries, oldToken)
	entry.session.RoomToken = newToken
	entry.deadline = time.Now().Add(s.ttl)
	s.entries[newToken] = entry

	return nil
}

func (s *MemoryStore) Remove(roomToken string) error {
	s.Lock()
	defer s.Unlock()

	delete(s.entries, roomToken)

	return nil
}

func (s *MemoryStore) Close() error {
	close(s.stop)
	<-s.done

	return nil
}

func (s *MemoryStore) janitor() {
	defer close(s.done)

	period := s.ttl / 10
	if period < time.Millisecond {
		period = time.Millisecond
	}

	tk := time.NewTicker(period)
	defer tk.Stop()

	for {
		select {
		case <-tk.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	now := time.Now()

	s.Lock()
	var expired []struct {
		token string
		entry *memoryEntry
	}
	for token, entry := range s.entries {
		if now.After(entry.deadline) {
			delete(s.entries, token)
			expired = append(expired, struct {
				token string
				entry *memoryEntry
			}{token, entry})
		}
	}
	s.Unlock()

	// Deleting under the lock before firing makes the callback
	// single-shot: whoever removed the entry reports it.
	for _, e := range expired {
		s.fireEviction(e.token, e.entry)
	}
}

func (s *MemoryStore) fireEviction(roomToken string, entry *memoryEntry) {
	if s.onEviction != nil {
		s.onEviction(roomToken, entry.session)
	}
}
