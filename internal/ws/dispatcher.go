package ws

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/wordduel/word-duel-backend/internal/hub"
	"github.com/wordduel/word-duel-backend/internal/session"
	"github.com/wordduel/word-duel-backend/internal/types"
)

// Dispatcher validates inbound frames at the boundary and routes them to the
// session layer, then hands the resulting broadcasts to the hub. It is the
// only place that maps wire events to operations, so the session layer can be
// tested without a live transport.
type Dispatcher struct {
	hub    *hub.Hub
	svc    *session.Service
	logger *zap.Logger
}

func NewDispatcher(h *hub.Hub, svc *session.Service, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{hub: h, svc: svc, logger: logger}
}

// Handle processes one frame from the given connection. Malformed frames are
// answered with an "error" event to the sender only; they never reach an
// operation.
func (d *Dispatcher) Handle(ctx context.Context, connID string, frame []byte) {
	var msg types.ClientMessage
	if err := json.Unmarshal(frame, &msg); err != nil {
		d.reject(connID, "bad json")
		return
	}

	switch msg.Event {
	case types.EvtSetUsername:
		var req types.SetUsername
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			d.reject(connID, "bad payload for "+msg.Event)
			return
		}
		username := strings.TrimSpace(req.Username)
		if username == "" {
			d.reject(connID, "username must not be empty")
			return
		}
		match, intents, err := d.svc.RequestMatch(username, connID)
		if err != nil {
			d.logger.Error("matchmaking failed", zap.String("conn_id", connID), zap.Error(err))
			d.reject(connID, "matchmaking failed")
			return
		}
		if match.Joined {
			// Subscribe before delivering so the joiner sees its own
			// "room joined" broadcast.
			d.hub.Subscribe(connID, match.Room.ID)
		}
		d.hub.Deliver(intents)

	case types.EvtInitializeGame:
		var req types.InitializeGame
		if err := json.Unmarshal(msg.Data, &req); err != nil || req.RoomID == "" {
			d.reject(connID, "bad payload for "+msg.Event)
			return
		}
		intents, err := d.svc.InitializeRound(ctx, req.RoomID)
		if err != nil {
			d.logger.Error("round initialization failed",
				zap.String("room_id", req.RoomID), zap.Error(err))
		}
		// On failure intents still carry the "word error" broadcast that
		// tells the room the gate was released.
		d.hub.Deliver(intents)

	case types.EvtHandleGuess:
		var req types.HandleGuess
		if err := json.Unmarshal(msg.Data, &req); err != nil || req.RoomID == "" || req.Username == "" {
			d.reject(connID, "bad payload for "+msg.Event)
			return
		}
		intents, err := d.svc.ApplyGuess(req.RoomID, req.Username, req.Correct, req.CorrectGuessedLetters)
		if err != nil {
			d.logger.Error("guess failed", zap.String("room_id", req.RoomID), zap.Error(err))
			return
		}
		d.hub.Deliver(intents)

	case types.EvtPlayAgain:
		var req types.PlayAgain
		if err := json.Unmarshal(msg.Data, &req); err != nil || req.RoomID == "" || req.Username == "" {
			d.reject(connID, "bad payload for "+msg.Event)
			return
		}
		intents, err := d.svc.CastPlayAgainVote(req.RoomID, req.Username)
		if err != nil {
			d.logger.Error("play-again vote failed", zap.String("room_id", req.RoomID), zap.Error(err))
			return
		}
		d.hub.Deliver(intents)

	case types.EvtLeaveRoom:
		var req types.LeaveRoom
		if err := json.Unmarshal(msg.Data, &req); err != nil || req.RoomID == "" || req.Username == "" {
			d.reject(connID, "bad payload for "+msg.Event)
			return
		}
		intents := d.svc.Reconcile(session.ByUsername(req.RoomID, req.Username))
		d.hub.Unsubscribe(connID)
		d.hub.Deliver(intents)

	default:
		d.reject(connID, "unknown event")
	}
}

// Disconnected reconciles an ungraceful drop. Safe to call after a graceful
// leave already emptied the seat.
func (d *Dispatcher) Disconnected(connID string) {
	d.hub.Deliver(d.svc.Reconcile(session.ByConnection(connID)))
}

func (d *Dispatcher) reject(connID, reason string) {
	d.hub.Send(connID, types.EvtError, types.ErrorMessage{Message: reason})
}
