package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ricacasa/concierge/internal/handler/control"
	middlewarePkg "github.com/ricacasa/concierge/internal/middleware"
	"github.com/ricacasa/concierge/internal/service/queue"
	"github.com/ricacasa/concierge/internal/service/session"
	"github.com/ricacasa/concierge/internal/status"
	"github.com/ricacasa/concierge/internal/transport"
	"github.com/ricacasa/concierge/internal/ws"
)

// NewRouter wires the operator control surface and the dashboard push
// channel. operatorToken gates both; empty means open access.
func NewRouter(tracker *status.Tracker, client transport.Client, handoff *queue.Queue, sessions *session.Store, hub *ws.Hub, operatorToken string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	controlHandler := control.New(tracker, client, handoff, sessions)

	r.Route("/api", func(api chi.Router) {
		api.Use(middlewarePkg.OperatorAuth(operatorToken))
		controlHandler.RegisterRoutes(api)
	})

	r.Get("/ws", hub.ServeHTTP)

	return r
}
