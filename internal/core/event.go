package core

import "context"

// EventKind names a notification the session dispatches to handlers.
type EventKind string

const (
	// EventReady fires once the initial roster snapshot has been applied.
	EventReady EventKind = "ready"
	// EventMessage carries a chat message in Event.Message.
	EventMessage EventKind = "message"
	// EventMemberJoined carries the new member in Event.Member.
	EventMemberJoined EventKind = "member_joined"
	// EventMemberLeave carries the departed member in Event.Member.
	EventMemberLeave EventKind = "member_leave"
	// EventWarn carries a server warning in Event.Text.
	EventWarn EventKind = "warn"
	// EventInfo carries a server notice in Event.Text.
	EventInfo EventKind = "info"
)

// Event is what a handler receives. Only the fields relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Message *ChatMessage
	Member  *Member
	Text    string
}

// Handler reacts to a dispatched event. A returned error is logged and
// does not affect other handlers or the session.
type Handler func(ctx context.Context, ev Event) error
