package core

import "encoding/json"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventMembers carries a room's full member list after a membership change.
	EventMembers EventKind = iota
	// EventCodeUpdate carries the room buffer after an edit by another member.
	EventCodeUpdate
	// EventUserTyping names a member currently typing.
	EventUserTyping
	// EventLanguageUpdate carries the room's newly selected language.
	EventLanguageUpdate
	// EventCodeResponse carries the execution service's result payload.
	EventCodeResponse
)

// Event is sent to clients to describe what happened in their room.
type Event struct {
	Kind     EventKind
	Room     string
	Members  []string
	Code     string
	User     string
	Language string
	Result   json.RawMessage
}
