package room

import (
	"context"

	"github.com/pensign/cardroom/broadcast"
)

// HandlerFunc processes one inbound room event.
type HandlerFunc func(ctx context.Context, event broadcast.RoomEvent) error

// Router is a pure dispatch table from an event's function tag to its
// handler. Routing never fails: unrecognized tags resolve to the no-op
// handler, stale clients on old protocol versions must not be able to
// crash the dispatch loop.
type Router struct {
	handlers map[broadcast.EventFunc]HandlerFunc
	noop     HandlerFunc
}

func NewRouter() *Router {
	return &Router{
		handlers: make(map[broadcast.EventFunc]HandlerFunc),
		noop: func(_ context.Context, _ broadcast.RoomEvent) error {
			return nil
		},
	}
}

// Register wires a function tag to a handler. Registration happens once
// at service construction; a duplicate or nil handler is a programming
// error and panics, same as an invalid machine in a state machine pool.
func (r *Router) Register(fn broadcast.EventFunc, handler HandlerFunc) {
	if fn == "" {
		panic("cannot register handler for an empty function tag")
	}

	if handler == nil {
		panic("handler not initialized, got nil")
	}

	if _, exists := r.handlers[fn]; exists {
		panic("duplicate handler for function tag \"" + string(fn) + "\"")
	}

	r.handlers[fn] = handler
}

// Route returns the handler for the tag, or the no-op handler for
// unknown tags. It has no state and no side effects.
func (r *Router) Route(fn broadcast.EventFunc) HandlerFunc {
	if handler, exists := r.handlers[fn]; exists {
		return handler
	}

	return r.noop
}
