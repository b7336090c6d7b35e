package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pensign/cardroom/coordinator/types"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var _ Store = (*LevelDBStore)(nil)

type levelDBRecord struct {
	Session  *types.SigningSession `json:"session"`
	Deadline time.Time             `json:"deadline"`
}

// LevelDBStore persists sessions so an instance restart does not drop
// rooms mid-handshake. The sliding window is stored with the record and
// a janitor scan evicts lapsed entries.
type LevelDBStore struct {
	sync.Mutex
	stateDb    *leveldb.DB
	ttl        time.Duration
	onEviction EvictionHandler

	stop chan struct{}
	done chan struct{}
}

func NewLevelDBStore(stateDbPath string, ttl time.Duration, onEviction EvictionHandler) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(stateDbPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open session stateDB: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &LevelDBStore{
		stateDb:    db,
		ttl:        ttl,
		onEviction: onEviction,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go s.janitor()

	return s, nil
}

func makeSessionKey(roomToken string) []byte {
	return []byte(fmt.Sprintf("%s_%s", KeyPrefix, roomToken))
}

func (s *LevelDBStore) Get(roomToken string) (*types.SigningSession, bool, error) {
	s.Lock()

	record, err := s.getRecord(roomToken)
	if err != nil {
		s.Unlock()
		return nil, false, err
	}
	if record == nil {
		s.Unlock()
		return nil, false, nil
	}

	if time.Now().After(record.Deadline) {
		if err := s.stateDb.Delete(makeSessionKey(roomToken), nil); err != nil {
			s.Unlock()
			return nil, false, fmt.Errorf("failed to delete expired session: %w", err)
		}
		s.Unlock()

		// The handler runs unlocked so it may call back into the store.
		if s.onEviction != nil {
			s.onEviction(roomToken, record.Session)
		}
		return nil, false, nil
	}
	s.Unlock()

	return record.Session, true, nil
}

func (s *LevelDBStore) Put(roomToken string, session *types.SigningSession) error {
	s.Lock()
	defer s.Unlock()

	return s.putRecord(roomToken, &levelDBRecord{
		Session:  session,
		Deadline: time.Now().Add(s.ttl),
	})
}

func (s *LevelDBStore) Rename(oldToken, newToken string) error {
	s.Lock()
	defer s.Unlock()

	record, err := s.getRecord(oldToken)
	if err != nil {
		return fmt.Errorf("failed to read session %s: %w", oldToken, err)
	}
	if record == nil {
		return nil
	}

	record.Session.RoomToken = newToken
	record.Deadline = time.Now().Add(s.ttl)

	if err := s.putRecord(newToken, record); err != nil {
		return fmt.Errorf("failed to write session under new token: %w", err)
	}

	if err := s.stateDb.Delete(makeSessionKey(oldToken), nil); err != nil {
		return fmt.Errorf("failed to delete session under old token: %w", err)
	}

	return nil
}

func (s *LevelDBStore) Remove(roomToken string) error {
	s.Lock()
	defer s.Unlock()

	if err := s.stateDb.Delete(makeSessionKey(roomToken), nil); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}

	return nil
}

func (s *LevelDBStore) Close() error {
	close(s.stop)
	<-s.done

	if err := s.stateDb.Close(); err != nil {
		return fmt.Errorf("failed to close session stateDB: %w", err)
	}

	return nil
}

func (s *LevelDBStore) getRecord(roomToken string) (*levelDBRecord, error) {
	bz, err := s.stateDb.Get(makeSessionKey(roomToken), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session record: %w", err)
	}

	var record levelDBRecord
	if err := json.Unmarshal(bz, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session record: %w", err)
	}

	return &record, nil
}

func (s *LevelDBStore) putRecord(roomToken string, record *levelDBRecord) error {
	bz, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	if err := s.stateDb.Put(makeSessionKey(roomToken), bz, nil); err != nil {
		return fmt.Errorf("failed to put session record: %w", err)
	}

	return nil
}

func (s *LevelDBStore) janitor() {
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

func (s *LevelDBStore) sweep() {
	now := time.Now()

	s.Lock()
	var expired []struct {
		token  string
		record *levelDBRecord
	}

	iter := s.stateDb.NewIterator(util.BytesPrefix([]byte(KeyPrefix+"_")), nil)
	for iter.Next() {
		var record levelDBRecord
		if err := json.Unmarshal(iter.Value(), &record); err != nil {
			continue
		}
		if now.After(record.Deadline) {
			token := strings.TrimPrefix(string(iter.Key()), KeyPrefix+"_")
			record := record
			expired = append(expired, struct {
				token  string
				record *levelDBRecord
			}{token, &record})
		}
	}
	iter.Release()

	for _, e := range expired {
		if err := s.stateDb.Delete(makeSessionKey(e.token), nil); err != nil {
			continue
		}
	}
	s.Unlock()

	for _, e := range expired {
		if s.onEviction != nil {
			s.onEviction(e.token, e.record.Session)
		}
	}
}
