package session

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pensign/cardroom/coordinator/types"
	"github.com/stretchr/testify/require"
)

// evictionRecorder counts eviction callbacks and keeps what they were
// called with.
type evictionRecorder struct {
	sync.Mutex
	tokens   []string
	sessions []*types.SigningSession
	fired    chan struct{}
}

func newEvictionRecorder() *evictionRecorder {
	return &evictionRecorder{fired: make(chan struct{}, 16)}
}

func (r *evictionRecorder) handler(roomToken string, session *types.SigningSession) {
	r.Lock()
	defer r.Unlock()

	r.tokens = append(r.tokens, roomToken)
	r.sessions = append(r.sessions, session)
	r.fired <- struct{}{}
}

func (r *evictionRecorder) count() int {
	r.Lock()
	defer r.Unlock()

	return len(r.tokens)
}

func (r *evictionRecorder) waitFired(t *testing.T, timeout time.Duration) {
	t.Helper()
	select {
	case <-r.fired:
	case <-time.After(timeout):
		t.Fatal("eviction handler was not called in time")
	}
}

func testSession(roomToken string) *types.SigningSession {
	return &types.SigningSession{
		RoomToken:    roomToken,
		CollectionID: "collection_id",
		Clients:      []string{"connection_id"},
		SignerToken:  "signer_token",
		Documents: []types.DocumentSigningPayload{
			{
				DocumentID: "document_id",
				Fields: []types.SignatureFieldData{
					{Name: "sig1", Image: "aW1hZ2U="},
				},
			},
		},
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	req := require.New(t)

	store := NewMemoryStore(time.Minute, nil)
	defer store.Close()

	_, ok, err := store.Get("room_token")
	req.NoError(err)
	req.False(ok)

	sess := testSession("room_token")
	req.NoError(store.Put("room_token", sess))

	got, ok, err := store.Get("room_token")
	req.NoError(err)
	req.True(ok)
	req.Empty(cmp.Diff(sess, got))
}

func TestMemoryStore_EvictionFiresExactlyOnce(t *testing.T) {
	req := require.New(t)

	rec := newEvictionRecorder()
	store := NewMemoryStore(50*time.Millisecond, rec.handler)
	defer store.Close()

	sess := testSession("room_token")
	req.NoError(store.Put("room_token", sess))

	rec.waitFired(t, 2*time.Second)

	// Janitor keeps running; the entry is gone so nothing fires again.
	time.Sleep(200 * time.Millisecond)
	req.Equal(1, rec.count())
	req.Equal("room_token", rec.tokens[0])
	req.Empty(cmp.Diff(sess, rec.sessions[0]))

	_, ok, err := store.Get("room_token")
	req.NoError(err)
	req.False(ok)
}

func TestMemoryStore_RemoveDoesNotFireEviction(t *testing.T) {
	req := require.New(t)

	rec := newEvictionRecorder()
	store := NewMemoryStore(50*time.Millisecond, rec.handler)
	defer store.Close()

	req.NoError(store.Put("room_token", testSession("room_token")))
	req.NoError(store.Remove("room_token"))

	time.Sleep(200 * time.Millisecond)
	req.Zero(rec.count())

	_, ok, err := store.Get("room_token")
	req.NoError(err)
	req.False(ok)
}

func TestMemoryStore_Rename(t *testing.T) {
	req := require.New(t)

	rec := newEvictionRecorder()
	store := NewMemoryStore(time.Minute, rec.handler)
	defer store.Close()

	req.NoError(store.Put("provisional_token", testSession("provisional_token")))
	req.NoError(store.Rename("provisional_token", "durable_token"))

	_, ok, err := store.Get("provisional_token")
	req.NoError(err)
	req.False(ok)

	got, ok, err := store.Get("durable_token")
	req.NoError(err)
	req.True(ok)
	req.Equal("durable_token", got.RoomToken)
	req.Equal("collection_id", got.CollectionID)

	// The move is not an eviction.
	req.Zero(rec.count())

	// Renaming a missing token is a no-op.
	req.NoError(store.Rename("missing_token", "whatever"))
}

func TestMemoryStore_PutSlidesWindow(t *testing.T) {
	req := require.New(t)

	rec := newEvictionRecorder()
	store := NewMemoryStore(500*time.Millisecond, rec.handler)
	defer store.Close()

	sess := testSession("room_token")
	req.NoError(store.Put("room_token", sess))

	// Re-put before the first window lapses; the deadline resets.
	time.Sleep(300 * time.Millisecond)
	req.NoError(store.Put("room_token", sess))

	// Past the first deadline, inside the second.
	time.Sleep(350 * time.Millisecond)
	_, ok, err := store.Get("room_token")
	req.NoError(err)
	req.True(ok)
	req.Zero(rec.count())

	rec.waitFired(t, 2*time.Second)
	req.Equal(1, rec.count())
}
