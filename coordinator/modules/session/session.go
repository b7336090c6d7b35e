package session

import (
	"time"

	"github.com/pensign/cardroom/coordinator/types"
)

const (
	// DefaultTTL is the sliding expiration window. Every Put resets it.
	DefaultTTL = 3 * time.Minute

	// KeyPrefix namespaces session records in shared keyspaces.
	KeyPrefix = "smartcard_session"
)

// EvictionHandler is invoked exactly once when an entry's TTL lapses
// due to expiration. It never fires for an explicit Remove or Rename,
// abandonment is the only trigger.
type EvictionHandler func(roomToken string, session *types.SigningSession)

// Store keeps at most one signing session per room token between group
// creation and either explicit close or TTL eviction.
//
// Get on a missing or expired token returns ok=false, never an error:
// callers treat absence as "room not ready" and no-op. Writes follow a
// read-modify-write discipline with last-write-wins semantics; the
// signing protocol is convergent under that, not serializable.
type Store interface {
	Get(roomToken string) (*types.SigningSession, bool, error)
	Put(roomToken string, session *types.SigningSession) error
	Rename(oldToken, newToken string) error
	Remove(roomToken string) error
	Close() error
}
