package room

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pensign/cardroom/broadcast"
	"github.com/pensign/cardroom/coordinator/modules/logger"
	"github.com/pensign/cardroom/coordinator/modules/session"
	"github.com/pensign/cardroom/coordinator/types"
	"github.com/pensign/cardroom/mocks/broadcastMocks"
	"github.com/pensign/cardroom/mocks/serviceMocks"
	"github.com/stretchr/testify/require"
)

func newTestRoomService(t *testing.T) (*BaseRoomService, *broadcastMocks.MockBroadcaster, *serviceMocks.MockSigningService, session.Store) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	broadcaster := broadcastMocks.NewMockBroadcaster(ctrl)
	signingService := serviceMocks.NewMockSigningService(ctrl)

	sessionStore := session.NewMemoryStore(time.Minute, nil)
	t.Cleanup(func() { sessionStore.Close() })

	svc := NewRoomService(sessionStore, broadcaster, signingService, logger.NewLogger("test"))

	return svc, broadcaster, signingService, sessionStore
}

func marshal(t *testing.T, v interface{}) []byte {
	t.Helper()

	bz, err := json.Marshal(v)
	require.NoError(t, err)

	return bz
}

func TestRoomService_CreateGroup(t *testing.T) {
	var (
		ctx = context.Background()
		req = require.New(t)
	)

	svc, broadcaster, _, _ := newTestRoomService(t)

	createBz := marshal(t, &createGroupData{
		CollectionID: "collection_id",
		SignerToken:  "signer_token",
		Documents: []types.DocumentSigningPayload{
			{DocumentID: "document_id"},
		},
	})

	announcement := broadcast.RoomEvent{
		Function:  broadcast.EventCreateGroup,
		RoomToken: "room_token",
		Data:      marshal(t, &roomAnnouncement{RoomToken: "room_token"}),
	}

	t.Run("test_create_seeds_session", func(t *testing.T) {
		broadcaster.EXPECT().JoinGroup("conn_1", "room_token").Times(1).Return(nil)
		broadcaster.EXPECT().SendToGroup("room_token", announcement).Times(1).Return(nil)

		err := svc.ProcessEvent(ctx, broadcast.RoomEvent{
			Function:     broadcast.EventCreateGroup,
			RoomToken:    "room_token",
			ConnectionID: "conn_1",
			Data:         createBz,
		})
		req.NoError(err)

		sess, ok, err := svc.GetSession("room_token")
		req.NoError(err)
		req.True(ok)
		req.Equal("collection_id", sess.CollectionID)
		req.Equal("signer_token", sess.SignerToken)
		req.Equal([]string{"conn_1"}, sess.Clients)
		req.Len(sess.Documents, 1)
	})

	t.Run("test_recreate_is_idempotent", func(t *testing.T) {
		// The session stays as seeded; the re-creating client still
		// joins and the room id is announced again.
		broadcaster.EXPECT().JoinGroup("conn_2", "room_token").Times(1).Return(nil)
		broadcaster.EXPECT().SendToGroup("room_token", announcement).Times(1).Return(nil)

		err := svc.ProcessEvent(ctx, broadcast.RoomEvent{
			Function:     broadcast.EventCreateGroup,
			RoomToken:    "room_token",
			ConnectionID: "conn_2",
			Data: marshal(t, &createGroupData{
				CollectionID: "another_collection",
			}),
		})
		req.NoError(err)

		sess, ok, err := svc.GetSession("room_token")
		req.NoError(err)
		req.True(ok)
		req.Equal("collection_id", sess.CollectionID)
		req.Equal([]string{"conn_1"}, sess.Clients)
	})
}

func TestRoomService_Connect(t *testing.T) {
	var (
		ctx = context.Background()
		req = require.New(t)
	)

	svc, broadcaster, _, sessionStore := newTestRoomService(t)

	req.NoError(sessionStore.Put("room_token", &types.SigningSession{
		RoomToken: "room_token",
		Clients:   []string{"conn_1"},
	}))

	t.Run("test_connect_joins_and_announces", func(t *testing.T) {
		broadcaster.EXPECT().JoinGroup("conn_2", "room_token").Times(1).Return(nil)
		broadcaster.EXPECT().SendToGroup("room_token", broadcast.RoomEvent{
			Function:     broadcast.EventConnect,
			RoomToken:    "room_token",
			ConnectionID: "conn_2",
		}, "conn_2").Times(1).Return(nil)

		err := svc.ProcessEvent(ctx, broadcast.RoomEvent{
			Function:     broadcast.EventConnect,
			RoomToken:    "room_token",
			ConnectionID: "conn_2",
		})
		req.NoError(err)

		sess, ok, err := svc.GetSession("room_token")
		req.NoError(err)
		req.True(ok)
		req.Equal([]string{"conn_1", "conn_2"}, sess.Clients)
	})

	t.Run("test_reconnect_does_not_duplicate_client", func(t *testing.T) {
		broadcaster.EXPECT().JoinGroup("conn_2", "room_token").Times(1).Return(nil)
		broadcaster.EXPECT().SendToGroup("room_token", gomock.Any(), "conn_2").Times(1).Return(nil)

		err := svc.ProcessEvent(ctx, broadcast.RoomEvent{
			Function:     broadcast.EventConnect,
			RoomToken:    "room_token",
			ConnectionID: "conn_2",
		})
		req.NoError(err)

		sess, _, err := svc.GetSession("room_token")
		req.NoError(err)
		req.Equal([]string{"conn_1", "conn_2"}, sess.Clients)
	})

	t.Run("test_connect_to_unknown_room_still_announces", func(t *testing.T) {
		// No session, no join; the announcement goes out regardless.
		broadcaster.EXPECT().SendToGroup("missing_token", broadcast.RoomEvent{
			Function:     broadcast.EventConnect,
			RoomToken:    "missing_token",
			ConnectionID: "conn_3",
		}, "conn_3").Times(1).Return(nil)

		err := svc.ProcessEvent(ctx, broadcast.RoomEvent{
			Function:     broadcast.EventConnect,
			RoomToken:    "missing_token",
			ConnectionID: "conn_3",
		})
		req.NoError(err)
	})
}

func TestRoomService_PrepareField(t *testing.T) {
	var (
		ctx = context.Background()
		req = require.New(t)
	)

	svc, _, _, sessionStore := newTestRoomService(t)

	req.NoError(sessionStore.Put("room_token", &types.SigningSession{
		RoomToken: "room_token",
		Clients:   []string{"conn_1"},
	}))

	prepareBz := marshal(t, &prepareFieldData{
		DocumentID: "document_id",
		Field:      types.SignatureFieldData{Name: "sig1", Image: "aW1hZ2U="},
	})

	t.Run("test_field_registered_with_document", func(t *testing.T) {
		err := svc.ProcessEvent(ctx, broadcast.RoomEvent{
			Function:  broadcast.EventPrepareField,
			RoomToken: "room_token",
			Data:      prepareBz,
		})
		req.NoError(err)

		sess, _, err := svc.GetSession("room_token")
		req.NoError(err)
		document, field := sess.FindFieldByName("sig1")
		req.NotNil(field)
		req.Equal("document_id", document.DocumentID)
		req.Equal("aW1hZ2U=", field.Image)
	})

	t.Run("test_second_registration_is_noop", func(t *testing.T) {
		err := svc.ProcessEvent(ctx, broadcast.RoomEvent{
			Function:  broadcast.EventPrepareField,
			RoomToken: "room_token",
			Data: marshal(t, &prepareFieldData{
				DocumentID: "document_id",
				Field:      types.SignatureFieldData{Name: "sig1", Image: "b3RoZXI="},
			}),
		})
		req.NoError(err)

		sess, _, err := svc.GetSession("room_token")
		req.NoError(err)
		req.Len(sess.Documents, 1)
		req.Len(sess.Documents[0].Fields, 1)
		_, field := sess.FindFieldByName("sig1")
		req.Equal("aW1hZ2U=", field.Image)
	})

	t.Run("test_unknown_room_is_noop", func(t *testing.T) {
		err := svc.ProcessEvent(ctx, broadcast.RoomEvent{
			Function:  broadcast.EventPrepareField,
			RoomToken: "missing_token",
			Data:      prepareBz,
		})
		req.NoError(err)
	})
}

func TestRoomService_SendHashDelegates(t *testing.T) {
	var (
		ctx = context.Background()
		req = require.New(t)
	)

	svc, _, signingService, _ := newTestRoomService(t)

	event := broadcast.RoomEvent{
		Function:  broadcast.EventSendHash,
		RoomToken: "room_token",
		Data:      json.RawMessage(`{"name":"sig1"}`),
	}
	signingService.EXPECT().HandleSendHash(gomock.Any(), event).Times(1).Return(nil)

	req.NoError(svc.ProcessEvent(ctx, event))
}

func TestRoomService_ProcessDone(t *testing.T) {
	var (
		ctx = context.Background()
		req = require.New(t)
	)

	svc, broadcaster, _, _ := newTestRoomService(t)

	// The terminal signal reaches the whole room, sender included.
	broadcaster.EXPECT().SendToGroup("room_token", broadcast.RoomEvent{
		Function:      broadcast.EventProcessDone,
		RoomToken:     "room_token",
		Data:          json.RawMessage(`{"ok":true}`),
		IsProcessDone: true,
	}).Times(1).Return(nil)

	req.NoError(svc.ProcessEvent(ctx, broadcast.RoomEvent{
		Function:      broadcast.EventProcessDone,
		RoomToken:     "room_token",
		ConnectionID:  "conn_1",
		Data:          json.RawMessage(`{"ok":true}`),
		IsProcessDone: true,
	}))
}

func TestRoomService_SendMessageExcludesSender(t *testing.T) {
	var (
		ctx = context.Background()
		req = require.New(t)
	)

	svc, broadcaster, _, _ := newTestRoomService(t)

	event := broadcast.RoomEvent{
		Function:     broadcast.EventSendMessage,
		RoomToken:    "room_token",
		ConnectionID: "conn_1",
		Data:         json.RawMessage(`{"scroll":3}`),
	}
	broadcaster.EXPECT().SendToGroup("room_token", event, "conn_1").Times(1).Return(nil)

	req.NoError(svc.ProcessEvent(ctx, event))
}

func TestRoomService_CloseRoom(t *testing.T) {
	var (
		ctx = context.Background()
		req = require.New(t)
	)

	svc, broadcaster, _, sessionStore := newTestRoomService(t)

	req.NoError(sessionStore.Put("room_token", &types.SigningSession{
		RoomToken: "room_token",
		Clients:   []string{"conn_1", "conn_2"},
	}))

	broadcaster.EXPECT().LeaveGroup("conn_1", "room_token").Times(1).Return(nil)
	broadcaster.EXPECT().LeaveGroup("conn_2", "room_token").Times(1).Return(nil)

	req.NoError(svc.CloseRoom(ctx, "room_token"))

	_, ok, err := svc.GetSession("room_token")
	req.NoError(err)
	req.False(ok)

	// Closing an already closed room is harmless.
	req.NoError(svc.CloseRoom(ctx, "room_token"))
}

func TestRoomService_UnknownTagIsNoop(t *testing.T) {
	var (
		ctx = context.Background()
		req = require.New(t)
	)

	svc, _, _, _ := newTestRoomService(t)

	req.NoError(svc.ProcessEvent(ctx, broadcast.RoomEvent{
		Function:  "MoveToAd",
		RoomToken: "room_token",
	}))
}
