// Package ws is the realtime gateway. It admits connections only with a
// valid session token, then serves matchmaking events over JSON frames.
// Event dispatch goes through a table built once at construction time, so
// the full protocol surface is visible in one place.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/matchroom/internal/common"
	"github.com/dmitrijs2005/matchroom/internal/logging"
	"github.com/dmitrijs2005/matchroom/internal/server/rooms"
	"github.com/dmitrijs2005/matchroom/internal/server/users"
	"github.com/gorilla/websocket"
)

type eventHandler func(ctx context.Context, c *Conn, data json.RawMessage) (any, error)

type Gateway struct {
	users    *users.Service
	registry *rooms.Registry
	hub      *Hub
	logger   logging.Logger
	upgrader websocket.Upgrader
	handlers map[string]eventHandler
}

func NewGateway(us *users.Service, registry *rooms.Registry, l logging.Logger) *Gateway {
	g := &Gateway{
		users:    us,
		registry: registry,
		hub:      NewHub(),
		logger:   l.With("module", "ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// cross-origin policy is handled by the fronting layer
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	g.handlers = map[string]eventHandler{
		EventCreateRoom: g.onCreateRoom,
		EventJoinRoom:   g.onJoinRoom,
	}

	return g
}

// Register mounts the websocket endpoint on mux.
func (g *Gateway) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws", g.serveWS)
}

// serveWS admits the connection. The token is verified before the upgrade;
// a bad token gets a plain 401 and the connection never reaches the
// protocol. The internal failure reason is logged, not revealed.
func (g *Gateway) serveWS(w http.ResponseWriter, r *http.Request) {

	claims, err := g.users.AuthorizeConnection(r.Context(), bearerToken(r))
	if err != nil {
		g.logger.Warn(r.Context(), "connection rejected", "reason", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ws, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		g.logger.Warn(r.Context(), "upgrade failed", "error", err)
		return
	}

	c := newConn(ws, claims.UserID)
	g.logger.Info(r.Context(), "connection admitted", "username", c.username)

	go c.writePump()
	g.readPump(c)
}

// bearerToken extracts the session token from the Authorization header or,
// for browser clients that cannot set headers on a websocket, from the query
// string.
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if after, ok := strings.CutPrefix(h, "Bearer "); ok {
			return after
		}
	}
	return r.URL.Query().Get(common.AccessTokenQueryParam)
}

func (g *Gateway) readPump(c *Conn) {
	defer g.closeConn(c)

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx := context.Background()

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			g.reply(c, env.ID, EventError, ErrorResponse{Error: "malformed frame"})
			continue
		}

		handler, ok := g.handlers[env.Event]
		if !ok {
			g.reply(c, env.ID, EventError, ErrorResponse{Error: "unknown event"})
			continue
		}

		resp, err := handler(ctx, c, env.Data)
		if err != nil {
			g.logger.Error(ctx, "event failed", "event", env.Event, "error", err)
			g.reply(c, env.ID, EventError, ErrorResponse{Error: "internal error"})
			continue
		}

		g.reply(c, env.ID, env.Event, resp)
	}
}

// closeConn tears down everything the connection owned: hub membership and
// any room it created that is still waiting for an opponent.
func (g *Gateway) closeConn(c *Conn) {
	for _, roomID := range c.createdRooms() {
		if g.registry.CancelPending(roomID, c.username) {
			g.logger.Info(context.Background(), "pending room cancelled", "room", roomID, "username", c.username)
		}
	}
	g.hub.Remove(c)
	close(c.send)
}

func (g *Gateway) reply(c *Conn, id int64, event string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	msg, err := json.Marshal(Envelope{ID: id, Event: event, Data: raw})
	if err != nil {
		return
	}
	select {
	case c.send <- msg:
	default:
		// slow client; drop the frame instead of stalling the read loop
	}
}

func (g *Gateway) onCreateRoom(ctx context.Context, c *Conn, _ json.RawMessage) (any, error) {
	roomID := g.registry.Create(c.username)
	g.hub.Join(roomID, c)
	c.trackCreated(roomID)

	g.logger.Info(ctx, "room created", "room", roomID, "username", c.username)
	return CreateRoomResponse{Room: roomID}, nil
}

func (g *Gateway) onJoinRoom(ctx context.Context, c *Conn, data json.RawMessage) (any, error) {
	var req JoinRoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return ErrorResponse{Error: "malformed join_room payload"}, nil
	}

	result := g.registry.Join(req.Room, c.username)
	if result == rooms.JoinSuccess {
		g.hub.Join(req.Room, c)
		g.notifyPeerJoined(c, req.Room)
		g.logger.Info(ctx, "room joined", "room", req.Room, "username", c.username)
	}

	return JoinRoomResponse{Result: result.String()}, nil
}

func (g *Gateway) notifyPeerJoined(c *Conn, roomID string) {
	raw, err := json.Marshal(PeerJoined{Room: roomID, Username: c.username})
	if err != nil {
		return
	}
	msg, err := json.Marshal(Envelope{Event: EventPeerJoined, Data: raw})
	if err != nil {
		return
	}
	g.hub.Broadcast(roomID, msg, c)
}
