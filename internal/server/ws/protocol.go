package ws

import "encoding/json"

// Envelope is the JSON frame exchanged over the websocket. Requests carry a
// client-chosen correlation id which the reply echoes, giving the same
// request/response semantics as an acknowledgement callback. Server-pushed
// events use id 0.
type Envelope struct {
	ID    int64           `json:"id,omitempty"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client-initiated events.
const (
	EventCreateRoom = "create_room"
	EventJoinRoom   = "join_room"
	EventError      = "error"
)

// Server-pushed events.
const (
	EventPeerJoined = "peer_joined"
)

type CreateRoomResponse struct {
	Room string `json:"room"`
}

type JoinRoomRequest struct {
	Room string `json:"room"`
}

type JoinRoomResponse struct {
	Result string `json:"result"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PeerJoined struct {
	Room     string `json:"room"`
	Username string `json:"username"`
}
