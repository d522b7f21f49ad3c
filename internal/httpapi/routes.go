package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wordduel/word-duel-backend/internal/hub"
	"github.com/wordduel/word-duel-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, d *ws.Dispatcher, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Get("/", Home)
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, d, logger))
	return r
}
