package core

// Room is the broadcast group for one room id: the set of connections
// currently subscribed to its events.
type Room struct {
	ID      string
	clients map[*Client]struct{}
}

// NewRoom constructs a room with no subscribers.
func NewRoom(id string) *Room {
	return &Room{
		ID:      id,
		clients: make(map[*Client]struct{}),
	}
}

// AddClient subscribes a connection to the room. Returns true if newly added.
func (r *Room) AddClient(c *Client) bool {
	if _, exists := r.clients[c]; exists {
		return false
	}
	r.clients[c] = struct{}{}
	return true
}

// RemoveClient unsubscribes a connection from the room. Returns true if removed.
func (r *Room) RemoveClient(c *Client) bool {
	if _, exists := r.clients[c]; !exists {
		return false
	}
	delete(r.clients, c)
	return true
}

// Broadcast delivers an event to every subscriber except the excluded
// connection (pass nil to include everyone). Delivery is fire-and-forget:
// a subscriber whose event buffer is full misses the event.
func (r *Room) Broadcast(event *Event, except *Client) {
	for client := range r.clients {
		if client == except {
			continue
		}
		select {
		case client.Events <- event:
		default:
			// Drop if slow consumer.
		}
	}
}

// Empty returns true if no connections are subscribed.
func (r *Room) Empty() bool {
	return len(r.clients) == 0
}
