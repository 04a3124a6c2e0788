package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin enters a room under a display name, leaving any current room.
	CommandJoin CommandKind = iota
	// CommandLeaveRoom exits the client's current room.
	CommandLeaveRoom
	// CommandCodeChange relays the edited buffer to the room's other members.
	CommandCodeChange
	// CommandTyping relays a typing indicator to the room's other members.
	CommandTyping
	// CommandLanguageChange switches the room's language, relayed to everyone.
	CommandLanguageChange
	// CommandCompileCode submits the buffer to the execution service.
	CommandCompileCode
)

// Command represents an action requested by a connection.
type Command struct {
	Kind     CommandKind
	Client   *Client
	Room     string
	Name     string
	Code     string
	Language string
	Version  string
}
