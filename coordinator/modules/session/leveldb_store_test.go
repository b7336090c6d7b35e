package session

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testDbPath(t *testing.T) string {
	t.Helper()

	path := "/tmp/cardroom_test_sessions_" + uuid.New().String()
	t.Cleanup(func() { os.RemoveAll(path) })

	return path
}

func TestLevelDBStore_PutGet(t *testing.T) {
	req := require.New(t)

	store, err := NewLevelDBStore(testDbPath(t), time.Minute, nil)
	req.NoError(err)
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

func TestLevelDBStore_SurvivesReopen(t *testing.T) {
	req := require.New(t)
	dbPath := testDbPath(t)

	store, err := NewLevelDBStore(dbPath, time.Minute, nil)
	req.NoError(err)

	sess := testSession("room_token")
	req.NoError(store.Put("room_token", sess))
	req.NoError(store.Close())

	reopened, err := NewLevelDBStore(dbPath, time.Minute, nil)
	req.NoError(err)
	defer reopened.Close()

	got, ok, err := reopened.Get("room_token")
	req.NoError(err)
	req.True(ok)
	req.Empty(cmp.Diff(sess, got))
}

func TestLevelDBStore_EvictionFiresExactlyOnce(t *testing.T) {
	req := require.New(t)

	rec := newEvictionRecorder()
	store, err := NewLevelDBStore(testDbPath(t), 50*time.Millisecond, rec.handler)
	req.NoError(err)
	defer store.Close()

	sess := testSession("room_token")
	req.NoError(store.Put("room_token", sess))

	rec.waitFired(t, 2*time.Second)

	time.Sleep(200 * time.Millisecond)
	req.Equal(1, rec.count())
	req.Equal("room_token", rec.tokens[0])
	req.Empty(cmp.Diff(sess, rec.sessions[0]))

	_, ok, err := store.Get("room_token")
	req.NoError(err)
	req.False(ok)
}

func TestLevelDBStore_RemoveDoesNotFireEviction(t *testing.T) {
	req := require.New(t)

	rec := newEvictionRecorder()
	store, err := NewLevelDBStore(testDbPath(t), 50*time.Millisecond, rec.handler)
	req.NoError(err)
	defer store.Close()

	req.NoError(store.Put("room_token", testSession("room_token")))
	req.NoError(store.Remove("room_token"))

	time.Sleep(200 * time.Millisecond)
	req.Zero(rec.count())
}

func TestLevelDBStore_Rename(t *testing.T) {
	req := require.New(t)

	rec := newEvictionRecorder()
	store, err := NewLevelDBStore(testDbPath(t), time.Minute, rec.handler)
	req.NoError(err)
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

	req.Zero(rec.count())
}
