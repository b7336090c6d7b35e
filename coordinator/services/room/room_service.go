package room

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pensign/cardroom/broadcast"
	"github.com/pensign/cardroom/coordinator/modules/logger"
	"github.com/pensign/cardroom/coordinator/modules/session"
	"github.com/pensign/cardroom/coordinator/services/signing"
	"github.com/pensign/cardroom/coordinator/types"
)

// RoomService is the entry point for every inbound room event: it
// routes by function tag and runs the matching handler. A failing
// handler only fails its own event, one room can never take down
// another room's dispatch.
type RoomService interface {
	ProcessEvent(ctx context.Context, event broadcast.RoomEvent) error
	CloseRoom(ctx context.Context, roomToken string) error
	GetSession(roomToken string) (*types.SigningSession, bool, error)
}

var _ RoomService = (*BaseRoomService)(nil)

type BaseRoomService struct {
	router       *Router
	sessionStore session.Store
	broadcaster  broadcast.Broadcaster
	signing      signing.SigningService
	logger       logger.Logger
}

func NewRoomService(
	sessionStore session.Store,
	broadcaster broadcast.Broadcaster,
	signingService signing.SigningService,
	log logger.Logger,
) *BaseRoomService {
	s := &BaseRoomService{
		sessionStore: sessionStore,
		broadcaster:  broadcaster,
		signing:      signingService,
		logger:       log,
	}

	router := NewRouter()
	router.Register(broadcast.EventCreateGroup, s.handleCreateGroup)
	router.Register(broadcast.EventConnect, s.handleConnect)
	router.Register(broadcast.EventLeaveGroup, s.handleLeaveGroup)
	router.Register(broadcast.EventPrepareField, s.handlePrepareField)
	router.Register(broadcast.EventSendHash, s.handleSendHash)
	router.Register(broadcast.EventProcessDone, s.handleProcessDone)
	router.Register(broadcast.EventSendMessage, s.handleSendMessage)
	s.router = router

	return s
}

func (s *BaseRoomService) ProcessEvent(ctx context.Context, event broadcast.RoomEvent) error {
	if err := s.router.Route(event.Function)(ctx, event); err != nil {
		s.logger.Log("failed to handle %s event for room %s: %v", event.Function, event.RoomToken, err)
		return err
	}

	return nil
}

func (s *BaseRoomService) GetSession(roomToken string) (*types.SigningSession, bool, error) {
	return s.sessionStore.Get(roomToken)
}

// CloseRoom is the explicit teardown path: broadcast group membership
// is dropped and the session is removed without firing the eviction
// hook.
func (s *BaseRoomService) CloseRoom(ctx context.Context, roomToken string) error {
	if err := s.handleLeaveGroup(ctx, broadcast.RoomEvent{
		Function:  broadcast.EventLeaveGroup,
		RoomToken: roomToken,
	}); err != nil {
		return err
	}

	if err := s.sessionStore.Remove(roomToken); err != nil {
		return fmt.Errorf("failed to Remove session: %w", err)
	}

	return nil
}

// createGroupData seeds a new session. CollectionID and documents come
// from the browser that opened the room.
type createGroupData struct {
	CollectionID string                         `json:"collection_id"`
	Documents    []types.DocumentSigningPayload `json:"documents"`
	SignerToken  string                         `json:"signer_token"`
}

type roomAnnouncement struct {
	RoomToken string `json:"roomToken"`
}

// handleCreateGroup creates the session on first sight of the token.
// Session creation is idempotent; the group join and the announcement
// run on every call so a re-creating client still learns the room id.
func (s *BaseRoomService) handleCreateGroup(ctx context.Context, event broadcast.RoomEvent) error {
	_, exists, err := s.sessionStore.Get(event.RoomToken)
	if err != nil {
		return fmt.Errorf("failed to Get session: %w", err)
	}

	if !exists {
		var data createGroupData
		if len(event.Data) > 0 {
			if err := json.Unmarshal(event.Data, &data); err != nil {
				return fmt.Errorf("failed to unmarshal create group data: %w", err)
			}
		}

		sess := &types.SigningSession{
			RoomToken:    event.RoomToken,
			CollectionID: data.CollectionID,
			Clients:      []string{event.ConnectionID},
			Documents:    data.Documents,
			SignerToken:  data.SignerToken,
		}

		if err := s.sessionStore.Put(event.RoomToken, sess); err != nil {
			return fmt.Errorf("failed to Put session: %w", err)
		}
	}

	if err := s.broadcaster.JoinGroup(event.ConnectionID, event.RoomToken); err != nil {
		return fmt.Errorf("failed to JoinGroup: %w", err)
	}

	announcementBz, err := json.Marshal(&roomAnnouncement{RoomToken: event.RoomToken})
	if err != nil {
		return fmt.Errorf("failed to marshal room announcement: %w", err)
	}

	if err := s.broadcaster.SendToGroup(event.RoomToken, broadcast.RoomEvent{
		Function:  broadcast.EventCreateGroup,
		RoomToken: event.RoomToken,
		Data:      announcementBz,
	}); err != nil {
		return fmt.Errorf("failed to announce room: %w", err)
	}

	return nil
}

// handleConnect lets a late-joining desktop agent discover an already
// open room without recreating it.
func (s *BaseRoomService) handleConnect(ctx context.Context, event broadcast.RoomEvent) error {
	sess, exists, err := s.sessionStore.Get(event.RoomToken)
	if err != nil {
		return fmt.Errorf("failed to Get session: %w", err)
	}

	if exists && !sess.HasClient(event.ConnectionID) {
		sess.Clients = append(sess.Clients, event.ConnectionID)
		if err := s.sessionStore.Put(event.RoomToken, sess); err != nil {
			return fmt.Errorf("failed to Put session: %w", err)
		}
	}

	if exists {
		if err := s.broadcaster.JoinGroup(event.ConnectionID, event.RoomToken); err != nil {
			return fmt.Errorf("failed to JoinGroup: %w", err)
		}
	}

	// The rest of the room learns about the newcomer either way.
	if err := s.broadcaster.SendToGroup(event.RoomToken, broadcast.RoomEvent{
		Function:     broadcast.EventConnect,
		RoomToken:    event.RoomToken,
		ConnectionID: event.ConnectionID,
	}, event.ConnectionID); err != nil {
		return fmt.Errorf("failed to announce connect: %w", err)
	}

	return nil
}

// handleLeaveGroup removes every tracked client from the broadcast
// group. The session itself stays until explicit close or eviction.
func (s *BaseRoomService) handleLeaveGroup(ctx context.Context, event broadcast.RoomEvent) error {
	sess, exists, err := s.sessionStore.Get(event.RoomToken)
	if err != nil {
		return fmt.Errorf("failed to Get session: %w", err)
	}
	if !exists {
		return nil
	}

	for _, connectionID := range sess.Clients {
		if err := s.broadcaster.LeaveGroup(connectionID, event.RoomToken); err != nil {
			return fmt.Errorf("failed to LeaveGroup for %s: %w", connectionID, err)
		}
	}

	return nil
}

type prepareFieldData struct {
	DocumentID string                   `json:"document_id"`
	Field      types.SignatureFieldData `json:"field"`
}

// handlePrepareField registers a signature field exactly once per name.
// A second registration for the same name is a no-op.
func (s *BaseRoomService) handlePrepareField(ctx context.Context, event broadcast.RoomEvent) error {
	sess, exists, err := s.sessionStore.Get(event.RoomToken)
	if err != nil {
		return fmt.Errorf("failed to Get session: %w", err)
	}
	if !exists {
		return nil
	}

	var data prepareFieldData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("failed to unmarshal prepare field data: %w", err)
	}

	if _, field := sess.FindFieldByName(data.Field.Name); field != nil {
		return nil
	}

	document := sess.FindDocument(data.DocumentID)
	if document == nil {
		sess.Documents = append(sess.Documents, types.DocumentSigningPayload{
			DocumentID: data.DocumentID,
		})
		document = &sess.Documents[len(sess.Documents)-1]
	}

	document.Fields = append(document.Fields, data.Field)

	if err := s.sessionStore.Put(event.RoomToken, sess); err != nil {
		return fmt.Errorf("failed to Put session: %w", err)
	}

	return nil
}

func (s *BaseRoomService) handleSendHash(ctx context.Context, event broadcast.RoomEvent) error {
	return s.signing.HandleSendHash(ctx, event)
}

// handleProcessDone broadcasts the terminal success or failure signal
// with the finished payload to the whole room.
func (s *BaseRoomService) handleProcessDone(ctx context.Context, event broadcast.RoomEvent) error {
	if err := s.broadcaster.SendToGroup(event.RoomToken, broadcast.RoomEvent{
		Function:      broadcast.EventProcessDone,
		RoomToken:     event.RoomToken,
		Data:          event.Data,
		IsProcessDone: event.IsProcessDone,
	}); err != nil {
		return fmt.Errorf("failed to broadcast process done: %w", err)
	}

	return nil
}

// handleSendMessage relays an arbitrary payload to the rest of the
// room, excluding the sender. Used for free-form UI sync.
func (s *BaseRoomService) handleSendMessage(ctx context.Context, event broadcast.RoomEvent) error {
	if err := s.broadcaster.SendToGroup(event.RoomToken, event, event.ConnectionID); err != nil {
		return fmt.Errorf("failed to relay message: %w", err)
	}

	return nil
}
