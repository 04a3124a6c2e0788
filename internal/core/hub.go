package core

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mkravets/codeshare-server/internal/store"
)

// RunRequest is a buffer submitted to the remote execution service.
type RunRequest struct {
	Code     string
	Language string
	Version  string
}

// Runner executes a buffer remotely and returns the raw result payload.
type Runner interface {
	Run(ctx context.Context, req RunRequest) (json.RawMessage, error)
}

// execFailure is broadcast in place of a result when the execution service
// is unreachable or returns an error. Same shape as a success payload so
// clients render it without special-casing.
var execFailure = json.RawMessage(`{"run":{"output":"Error compiling code."}}`)

type execResult struct {
	room    string
	payload json.RawMessage
}

// Hub coordinates room membership and event fan-out. A single goroutine
// (Run) owns the rooms map and all client room state, so membership
// transitions are atomic with respect to each other; only the execution
// call leaves the loop, and its result re-enters through a channel.
type Hub struct {
	log      *zerolog.Logger
	runner   Runner
	store    store.Store
	registry *Registry

	rooms   map[string]*Room
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	commands   chan *Command
	results    chan execResult
}

// NewHub creates a hub. runner and st may be nil, in which case execution
// requests synthesize the failure payload and nothing is recorded.
func NewHub(runner Runner, st store.Store, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		log:        logger,
		runner:     runner,
		store:      st,
		registry:   NewRegistry(),
		rooms:      make(map[string]*Room),
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan *Command, 32),
		results:    make(chan execResult, 8),
	}
}

// RegisterClient announces a new connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient runs the disconnect path for a connection. Safe to call
// for an already-removed client; the second call is a no-op.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Dispatch hands a command to the hub loop.
func (h *Hub) Dispatch(cmd *Command) {
	h.commands <- cmd
}

// Members returns the current member names of a room in join order.
func (h *Hub) Members(roomID string) []string {
	return h.registry.Members(roomID)
}

// Run processes registrations, commands and execution results until the
// context is cancelled. Must be called exactly once, in its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.log.Debug().Str("client_id", c.ID).Msg("client connected")

		case c := <-h.unregister:
			h.handleDisconnect(c)

		case cmd := <-h.commands:
			h.handleCommand(ctx, cmd)

		case res := <-h.results:
			if room, ok := h.rooms[res.room]; ok {
				room.Broadcast(&Event{Kind: EventCodeResponse, Room: res.room, Result: res.payload}, nil)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handleCommand(ctx context.Context, cmd *Command) {
	switch cmd.Kind {
	case CommandJoin:
		h.handleJoin(cmd.Client, cmd.Room, cmd.Name)
	case CommandLeaveRoom:
		h.leaveCurrentRoom(cmd.Client)
	case CommandCodeChange:
		h.relay(cmd.Room, cmd.Client, &Event{Kind: EventCodeUpdate, Room: cmd.Room, Code: cmd.Code})
	case CommandTyping:
		h.relay(cmd.Room, cmd.Client, &Event{Kind: EventUserTyping, Room: cmd.Room, User: cmd.Name})
	case CommandLanguageChange:
		h.relay(cmd.Room, nil, &Event{Kind: EventLanguageUpdate, Room: cmd.Room, Language: cmd.Language})
	case CommandCompileCode:
		h.handleCompile(ctx, cmd)
	}
}

// handleJoin moves a connection into a room, leaving its current room first.
// Empty room id or display name makes the whole operation a silent no-op.
func (h *Hub) handleJoin(c *Client, roomID, name string) {
	if roomID == "" || name == "" {
		h.log.Debug().Str("client_id", c.ID).Msg("join with missing room or name ignored")
		return
	}

	if c.Room != "" {
		h.leaveCurrentRoom(c)
	}

	c.Room = roomID
	c.Name = name

	room, ok := h.rooms[roomID]
	if !ok {
		room = NewRoom(roomID)
		h.rooms[roomID] = room
	}
	room.AddClient(c)
	h.registry.Add(roomID, name)

	h.log.Info().Str("client_id", c.ID).Str("room", roomID).Str("user", name).Msg("user joined room")
	room.Broadcast(&Event{Kind: EventMembers, Room: roomID, Members: h.registry.Members(roomID)}, nil)
}

// leaveCurrentRoom removes the connection's name from its room, broadcasts
// the updated member list (the leaver is still subscribed and receives it),
// then unsubscribes. No-op when the connection has no current room.
func (h *Hub) leaveCurrentRoom(c *Client) {
	if c.Room == "" {
		return
	}

	roomID := c.Room
	h.registry.Remove(roomID, c.Name)

	if room, ok := h.rooms[roomID]; ok {
		room.Broadcast(&Event{Kind: EventMembers, Room: roomID, Members: h.registry.Members(roomID)}, nil)
		room.RemoveClient(c)
		if room.Empty() {
			delete(h.rooms, roomID)
		}
	}

	h.log.Info().Str("client_id", c.ID).Str("room", roomID).Str("user", c.Name).Msg("user left room")
	c.Room = ""
	c.Name = ""
}

// handleDisconnect is the connection finalizer: it runs the leave path and
// closes the event channel. Idempotent per client.
func (h *Hub) handleDisconnect(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	h.leaveCurrentRoom(c)
	delete(h.clients, c)
	close(c.Events)
	h.log.Debug().Str("client_id", c.ID).Msg("client disconnected")
}

// relay fans an event out to a room's subscribers, optionally excluding the
// sender. Unknown rooms are silently ignored.
func (h *Hub) relay(roomID string, except *Client, event *Event) {
	if room, ok := h.rooms[roomID]; ok {
		room.Broadcast(event, except)
	}
}

// handleCompile forwards the buffer to the execution service without
// blocking the loop; the result re-enters through the results channel and
// is broadcast to whoever is still in the room by then. Requests for rooms
// with no tracked members are dropped.
func (h *Hub) handleCompile(ctx context.Context, cmd *Command) {
	if !h.registry.Has(cmd.Room) {
		h.log.Debug().Str("room", cmd.Room).Msg("compile request for unknown room dropped")
		return
	}

	req := RunRequest{Code: cmd.Code, Language: cmd.Language, Version: cmd.Version}
	roomID := cmd.Room

	go func() {
		payload := execFailure
		if h.runner != nil {
			out, err := h.runner.Run(ctx, req)
			if err != nil {
				h.log.Warn().Err(err).Str("room", roomID).Str("language", req.Language).Msg("execution failed")
			} else {
				payload = out
			}
		}

		if h.store != nil {
			run := store.Run{
				RoomID:   roomID,
				Language: req.Language,
				Version:  req.Version,
				Result:   string(payload),
			}
			if _, err := h.store.RecordRun(ctx, run); err != nil {
				h.log.Warn().Err(err).Str("room", roomID).Msg("failed to record run")
			}
		}

		select {
		case h.results <- execResult{room: roomID, payload: payload}:
		case <-ctx.Done():
		}
	}()
}
