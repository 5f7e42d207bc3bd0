package ws

import "sync"

// Hub maintains the broadcast groups keyed by room id. A connection may
// belong to several groups over its lifetime; membership is dropped when the
// connection closes.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Conn]struct{})}
}

func (h *Hub) Join(roomID string, c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.rooms[roomID]
	if !ok {
		group = make(map[*Conn]struct{})
		h.rooms[roomID] = group
	}
	group[c] = struct{}{}
}

// Broadcast sends msg to every member of the room except the sender (pass
// nil to reach everyone). Slow members with a full send buffer are skipped
// rather than blocking the whole group.
func (h *Hub) Broadcast(roomID string, msg []byte, except *Conn) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[roomID] {
		if c == except {
			continue
		}
		select {
		case c.send <- msg:
		default:
		}
	}
}

// Remove drops the connection from every group, deleting groups that become
// empty.
func (h *Hub) Remove(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for roomID, group := range h.rooms {
		delete(group, c)
		if len(group) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// Members reports the size of a room's broadcast group.
func (h *Hub) Members(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}
