// Package rooms implements the matchmaking room registry: a room is created
// Pending by one player and becomes Active exactly once when a second player
// joins. The registry owns both maps; nothing else mutates them.
package rooms

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// JoinResult is the outcome of a join attempt, reported to the client as an
// enumerated value rather than an error.
type JoinResult int

const (
	JoinSuccess JoinResult = iota
	JoinNotFound
	JoinFull
)

func (r JoinResult) String() string {
	switch r {
	case JoinSuccess:
		return "Success"
	case JoinNotFound:
		return "NotFound"
	case JoinFull:
		return "Full"
	default:
		return "Unknown"
	}
}

// PendingRoom has exactly one occupant waiting for an opponent.
type PendingRoom struct {
	ID        string
	Creator   string
	CreatedAt time.Time
}

// ActiveRoom has both occupants present; gameplay may begin.
type ActiveRoom struct {
	ID        string
	OccupantA string
	OccupantB string
	StartedAt time.Time
}

// Registry holds all pending and active rooms.
//
// The pending map is guarded by a plain mutex because join removes entries on
// read. The active map is guarded by an RWMutex since it is read far more
// often than written. Lock order is always pending before active, and the
// pending lock is held across the whole promotion, so no observer can see a
// room in neither or both maps.
type Registry struct {
	mu      sync.Mutex
	pending map[string]PendingRoom

	amu    sync.RWMutex
	active map[string]ActiveRoom
}

func NewRegistry() *Registry {
	return &Registry{
		pending: make(map[string]PendingRoom),
		active:  make(map[string]ActiveRoom),
	}
}

// Create allocates a fresh room id, records a pending room for the creator,
// and returns the id. Creation always succeeds.
func (r *Registry) Create(creator string) string {
	id := "room-" + uuid.NewString()

	r.mu.Lock()
	r.pending[id] = PendingRoom{ID: id, Creator: creator, CreatedAt: time.Now()}
	r.mu.Unlock()

	return id
}

// Join attempts the pending-to-active promotion. Exactly one concurrent
// joiner for a given room wins; every other caller gets JoinFull once the
// room is active, or JoinNotFound if the id never existed (or was cancelled).
func (r *Registry) Join(roomID, joiner string) JoinResult {
	r.mu.Lock()

	p, ok := r.pending[roomID]
	if !ok {
		r.mu.Unlock()

		r.amu.RLock()
		_, isActive := r.active[roomID]
		r.amu.RUnlock()

		if isActive {
			return JoinFull
		}
		return JoinNotFound
	}

	delete(r.pending, roomID)

	r.amu.Lock()
	r.active[roomID] = ActiveRoom{
		ID:        roomID,
		OccupantA: p.Creator,
		OccupantB: joiner,
		StartedAt: time.Now(),
	}
	r.amu.Unlock()

	r.mu.Unlock()
	return JoinSuccess
}

// CancelPending removes the pending room if it still exists and was created
// by creator. A room that has already been promoted is left untouched. It
// returns whether an entry was removed.
func (r *Registry) CancelPending(roomID, creator string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pending[roomID]
	if !ok || p.Creator != creator {
		return false
	}

	delete(r.pending, roomID)
	return true
}

// Active returns the active room for roomID, if any.
func (r *Registry) Active(roomID string) (ActiveRoom, bool) {
	r.amu.RLock()
	defer r.amu.RUnlock()

	room, ok := r.active[roomID]
	return room, ok
}

// PendingLen reports the number of rooms still waiting for an opponent.
func (r *Registry) PendingLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// ActiveLen reports the number of rooms with both occupants present.
func (r *Registry) ActiveLen() int {
	r.amu.RLock()
	defer r.amu.RUnlock()
	return len(r.active)
}
