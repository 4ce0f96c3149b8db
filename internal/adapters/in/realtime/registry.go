package realtime

import (
	"sync"
)

// Registry tracks connected clients and room membership. One room per order,
// keyed by the order id. All methods are safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	// clients by user id; a reconnect replaces the previous connection
	clients map[string]*Client

	// room id -> user id -> client
	rooms map[string]map[string]*Client

	// user id -> set of room ids, for cleanup on disconnect
	memberships map[string]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		clients:     make(map[string]*Client),
		rooms:       make(map[string]map[string]*Client),
		memberships: make(map[string]map[string]struct{}),
	}
}

// Register adds a client. If the same user is already connected, the old
// connection is closed and replaced; room memberships carry over to the new
// connection.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if previous, ok := r.clients[c.ID()]; ok && previous != c {
		previous.Close()
		for roomID := range r.memberships[c.ID()] {
			r.rooms[roomID][c.ID()] = c
		}
	}
	r.clients[c.ID()] = c
}

// Unregister removes the client and clears its memberships. Returns the ids
// of every room the client was in, so the caller can announce the departure.
// A stale connection superseded by a reconnect is ignored.
func (r *Registry) Unregister(c *Client) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.clients[c.ID()]; !ok || current != c {
		return nil
	}

	left := make([]string, 0, len(r.memberships[c.ID()]))
	for roomID := range r.memberships[c.ID()] {
		left = append(left, roomID)
		r.removeFromRoom(roomID, c.ID())
	}

	delete(r.memberships, c.ID())
	delete(r.clients, c.ID())
	return left
}

// Join adds the client to a room. Idempotent.
func (r *Registry) Join(roomID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rooms[roomID] == nil {
		r.rooms[roomID] = make(map[string]*Client)
	}
	r.rooms[roomID][c.ID()] = c

	if r.memberships[c.ID()] == nil {
		r.memberships[c.ID()] = make(map[string]struct{})
	}
	r.memberships[c.ID()][roomID] = struct{}{}
}

// Leave removes the client from a room. Idempotent.
func (r *Registry) Leave(roomID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeFromRoom(roomID, c.ID())
	if members, ok := r.memberships[c.ID()]; ok {
		delete(members, roomID)
	}
}

// RoomMembers returns a snapshot of the room's clients. Later membership
// changes do not affect the returned slice.
func (r *Registry) RoomMembers(roomID string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*Client, 0, len(r.rooms[roomID]))
	for _, c := range r.rooms[roomID] {
		members = append(members, c)
	}
	return members
}

// InRoom reports whether the client is currently a member of the room.
func (r *Registry) InRoom(roomID string, c *Client) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rooms[roomID][c.ID()]
	return ok
}

// ConnectionCount returns the number of registered clients.
func (r *Registry) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.clients)
}

func (r *Registry) removeFromRoom(roomID, userID string) {
	members, ok := r.rooms[roomID]
	if !ok {
		return
	}
	delete(members, userID)
	if len(members) == 0 {
		delete(r.rooms, roomID)
	}
}
