package core

import "sync"

// Registry maps room ids to the ordered set of member display names.
// Names are unique per room (set semantics); insertion order is preserved
// so member-list broadcasts are deterministic. Rooms are created lazily on
// first Add and pruned when the last name is removed.
//
// The hub loop is the only writer, but the mutex keeps snapshot reads from
// other goroutines (REST handlers, execution guard) safe.
type Registry struct {
	mu    sync.Mutex
	rooms map[string][]string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string][]string)}
}

// Add inserts name into the room's member set, creating the room if absent.
// Returns false if the name was already present.
func (r *Registry) Add(roomID, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.rooms[roomID]
	for _, m := range members {
		if m == name {
			return false
		}
	}
	r.rooms[roomID] = append(members, name)
	return true
}

// Remove deletes name from the room's member set. The room entry is pruned
// once its last member is removed. Removing an absent name is a no-op.
func (r *Registry) Remove(roomID, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomID]
	if !ok {
		return false
	}
	for i, m := range members {
		if m == name {
			r.rooms[roomID] = append(members[:i], members[i+1:]...)
			if len(r.rooms[roomID]) == 0 {
				delete(r.rooms, roomID)
			}
			return true
		}
	}
	return false
}

// Members returns a snapshot of the room's member names in insertion order.
// Absent rooms yield an empty slice.
func (r *Registry) Members(roomID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.rooms[roomID]
	out := make([]string, len(members))
	copy(out, members)
	return out
}

// Has reports whether the room currently has at least one member.
func (r *Registry) Has(roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.rooms[roomID]) > 0
}
