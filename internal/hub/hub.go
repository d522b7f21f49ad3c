// Package hub tracks live connections and their room subscriptions, and fans
// broadcast intents out to them. It knows nothing about game rules; it only
// moves encoded frames.
package hub

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/wordduel/word-duel-backend/internal/session"
	"github.com/wordduel/word-duel-backend/internal/types"
)

// outboxSize buffers a few frames per connection so one slow reader does not
// stall a broadcast. A connection that falls further behind is dropped.
const outboxSize = 8

type client struct {
	id     string
	outbox chan []byte
	roomID string
}

type Hub struct {
	mu     sync.Mutex
	conns  map[string]*client
	rooms  map[string]map[string]*client
	logger *zap.Logger
}

func New(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[string]*client),
		rooms:  make(map[string]map[string]*client),
		logger: logger,
	}
}

// Register creates the outbox for a new connection. The caller owns draining
// it; the hub owns closing it.
func (h *Hub) Register(connID string) <-chan []byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := &client{id: connID, outbox: make(chan []byte, outboxSize)}
	h.conns[connID] = c
	return c.outbox
}

// Unregister drops the connection and closes its outbox. Safe to call for a
// connection that was already dropped.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(connID)
}

// Subscribe joins the connection to a room's broadcast set, replacing any
// previous subscription. A connection is in at most one room.
func (h *Hub) Subscribe(connID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.conns[connID]
	if !ok {
		return
	}
	h.leaveRoom(c)
	c.roomID = roomID
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[string]*client)
	}
	h.rooms[roomID][connID] = c
}

// Unsubscribe removes the connection from its room without closing it.
func (h *Hub) Unsubscribe(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.conns[connID]; ok {
		h.leaveRoom(c)
	}
}

// Deliver encodes and sends each intent: room-scoped intents go to every
// connection subscribed to that room, connection-scoped intents to one.
func (h *Hub) Deliver(intents []session.Intent) {
	for _, in := range intents {
		payload, err := json.Marshal(types.ServerMessage{Event: in.Event, Data: in.Data})
		if err != nil {
			h.logger.Error("encoding broadcast", zap.String("event", in.Event), zap.Error(err))
			continue
		}

		h.mu.Lock()
		if in.ConnID != "" {
			if c, ok := h.conns[in.ConnID]; ok {
				h.send(c, payload)
			}
		} else if in.RoomID != "" {
			for _, c := range h.rooms[in.RoomID] {
				h.send(c, payload)
			}
		}
		h.mu.Unlock()
	}
}

// Send delivers a single event to one connection, bypassing intent plumbing.
// Used for boundary validation errors.
func (h *Hub) Send(connID, event string, data any) {
	h.Deliver([]session.Intent{session.ToConn(connID, event, data)})
}

// send must hold h.mu. A full outbox means the client stopped reading; drop
// it so the round can continue for everyone else.
func (h *Hub) send(c *client, payload []byte) {
	select {
	case c.outbox <- payload:
	default:
		h.logger.Warn("dropping slow connection", zap.String("conn_id", c.id))
		h.drop(c.id)
	}
}

// drop must hold h.mu.
func (h *Hub) drop(connID string) {
	c, ok := h.conns[connID]
	if !ok {
		return
	}
	h.leaveRoom(c)
	delete(h.conns, connID)
	close(c.outbox)
}

// leaveRoom must hold h.mu.
func (h *Hub) leaveRoom(c *client) {
	if c.roomID == "" {
		return
	}
	if set, ok := h.rooms[c.roomID]; ok {
		delete(set, c.id)
		if len(set) == 0 {
			delete(h.rooms, c.roomID)
		}
	}
	c.roomID = ""
}
