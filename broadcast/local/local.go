package local

import (
	"fmt"
	"sync"

	"github.com/pensign/cardroom/broadcast"
)

var _ broadcast.Broadcaster = (*LocalBroadcaster)(nil)

// LocalBroadcaster fans a room event out to every connection of a room
// held by this process. In a single-instance deployment it is the whole
// broadcast path; in a multi-instance deployment the kafka backend
// re-delivers through it on every process.
type LocalBroadcaster struct {
	sync.Mutex
	connections map[string]broadcast.Conn
	rooms       map[string]map[string]struct{}
}

func NewLocalBroadcaster() *LocalBroadcaster {
	return &LocalBroadcaster{
		connections: make(map[string]broadcast.Conn),
		rooms:       make(map[string]map[string]struct{}),
	}
}

// Register makes a connection addressable for group sends. The edge
// transport calls it when a client channel opens.
func (b *LocalBroadcaster) Register(conn broadcast.Conn) {
	b.Lock()
	defer b.Unlock()

	b.connections[conn.ConnectionID()] = conn
}

// Unregister drops the connection and removes it from every room.
func (b *LocalBroadcaster) Unregister(connectionID string) {
	b.Lock()
	defer b.Unlock()

	delete(b.connections, connectionID)
	for _, members := range b.rooms {
		delete(members, connectionID)
	}
}

func (b *LocalBroadcaster) JoinGroup(connectionID, room string) error {
	b.Lock()
	defer b.Unlock()

	members, ok := b.rooms[room]
	if !ok {
		members = make(map[string]struct{})
		b.rooms[room] = members
	}
	members[connectionID] = struct{}{}

	return nil
}

func (b *LocalBroadcaster) LeaveGroup(connectionID, room string) error {
	b.Lock()
	defer b.Unlock()

	members, ok := b.rooms[room]
	if !ok {
		return nil
	}

	delete(members, connectionID)
	if len(members) == 0 {
		delete(b.rooms, room)
	}

	return nil
}

func (b *LocalBroadcaster) SendToGroup(room string, event broadcast.RoomEvent, exclude ...string) error {
	b.Lock()

	excluded := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	var targets []broadcast.Conn
	for connectionID := range b.rooms[room] {
		if _, skip := excluded[connectionID]; skip {
			continue
		}
		if conn, ok := b.connections[connectionID]; ok {
			targets = append(targets, conn)
		}
	}
	b.Unlock()

	// Sends run outside the lock, a slow client must not stall joins.
	for _, conn := range targets {
		if err := conn.Send(event); err != nil {
			return fmt.Errorf("failed to send event to connection %s: %w", conn.ConnectionID(), err)
		}
	}

	return nil
}

func (b *LocalBroadcaster) Close() error {
	b.Lock()
	defer b.Unlock()

	b.connections = make(map[string]broadcast.Conn)
	b.rooms = make(map[string]map[string]struct{})

	return nil
}
