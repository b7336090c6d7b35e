package broadcast

import (
	"encoding/json"
)

// EventFunc is the discriminant of a room event envelope. Unknown tags
// are legal on the wire and resolve to a no-op on the receiving side.
type EventFunc string

const (
	EventCreateGroup  = EventFunc("CreateGroup")
	EventConnect      = EventFunc("Connect")
	EventLeaveGroup   = EventFunc("LeaveGroup")
	EventPrepareField = EventFunc("PrepareSmartCardParameterForSignature")
	EventSendHash     = EventFunc("SendHash")
	EventProcessDone  = EventFunc("ProcessDone")
	EventSendMessage  = EventFunc("SendMessage")
)

// RoomEvent is the envelope every client action and every broadcast is
// carried in, both on the real-time channel and on the bus. It is
// constructed per inbound action, consumed once and never persisted.
type RoomEvent struct {
	Function      EventFunc       `json:"function"`
	RoomToken     string          `json:"roomToken"`
	ConnectionID  string          `json:"connectionId"`
	Data          json.RawMessage `json:"data,omitempty"`
	IsProcessDone bool            `json:"isProcessDone,omitempty"`
}

// Conn is one live client connection, owned by the transport edge.
type Conn interface {
	ConnectionID() string
	Send(event RoomEvent) error
}

// Broadcaster delivers a message to all participants of a room,
// optionally excluding senders. Handler code depends on this interface
// only and never branches on the transport behind it.
type Broadcaster interface {
	JoinGroup(connectionID, room string) error
	LeaveGroup(connectionID, room string) error
	SendToGroup(room string, event RoomEvent, exclude ...string) error
	Close() error
}
