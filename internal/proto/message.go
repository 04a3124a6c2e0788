package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

const (
	InboundJoin           = "join"
	InboundLeaveRoom      = "leaveRoom"
	InboundCodeChange     = "codeChange"
	InboundTyping         = "typing"
	InboundLanguageChange = "languageChange"
	InboundCompileCode    = "compileCode"

	OutboundUserJoined     = "userJoined"
	OutboundCodeUpdate     = "codeUpdate"
	OutboundUserTyping     = "userTyping"
	OutboundLanguageUpdate = "languageUpdate"
	OutboundCodeResponse   = "codeResponse"
)

// JoinData requests to enter a room under a display name.
type JoinData struct {
	RoomID      string `json:"roomId"`
	DisplayName string `json:"displayName"`
}

// CodeChangeData carries the full buffer after an edit.
type CodeChangeData struct {
	RoomID string `json:"roomId"`
	Code   string `json:"code"`
}

// TypingData signals that a user is currently typing.
type TypingData struct {
	RoomID      string `json:"roomId"`
	DisplayName string `json:"displayName"`
}

// LanguageChangeData switches the room's selected language.
type LanguageChangeData struct {
	RoomID   string `json:"roomId"`
	Language string `json:"language"`
}

// CompileCodeData asks the server to run the buffer remotely.
type CompileCodeData struct {
	RoomID   string `json:"roomId"`
	Code     string `json:"code"`
	Language string `json:"language"`
	Version  string `json:"version"`
}
