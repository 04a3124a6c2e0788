package core

// Client is one websocket connection as seen by the core layer.
// Room and Name track the connection's current room membership and are
// mutated only by the hub loop; a client is in at most one room at a time.
type Client struct {
	ID     string
	Name   string
	Room   string
	Events chan *Event
}

// NewClient constructs a client with a buffered event channel.
func NewClient(id string) *Client {
	return &Client{
		ID:     id,
		Events: make(chan *Event, 16),
	}
}
