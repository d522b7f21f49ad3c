package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wordduel/word-duel-backend/internal/hub"
)

const writeTimeout = 3 * time.Second

// Handler upgrades the connection, registers it with the hub, and pumps
// frames: inbound through the dispatcher, outbound from the hub outbox. When
// the read loop ends for any reason the connection is reconciled, so the
// transport's own disconnect signal and an earlier "leave room" both land in
// the same idempotent routine.
func Handler(h *hub.Hub, d *Dispatcher, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		connID := uuid.NewString()
		outbox := h.Register(connID)
		logger.Info("connection opened", zap.String("conn_id", connID))

		defer func() {
			h.Unregister(connID)
			d.Disconnected(connID)
			logger.Info("connection closed", zap.String("conn_id", connID))
		}()

		// Writer goroutine: drains the outbox until the hub closes it.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for payload := range outbox {
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				// Clean close or going-away is normal; anything else still
				// just ends the session (reconcile runs in the defer).
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}
			d.Handle(r.Context(), connID, data)
		}
	}
}
