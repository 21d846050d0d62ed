// Package control exposes the operator-facing API: connection status,
// forced disconnect/reset, the handoff queue and live sessions.
package control

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ricacasa/concierge/internal/service/queue"
	"github.com/ricacasa/concierge/internal/service/session"
	"github.com/ricacasa/concierge/internal/status"
	"github.com/ricacasa/concierge/internal/transport"
)

// Handler serves the control API.
type Handler struct {
	tracker  *status.Tracker
	client   transport.Client
	handoff  *queue.Queue
	sessions *session.Store
}

// New creates the control handler.
func New(tracker *status.Tracker, client transport.Client, handoff *queue.Queue, sessions *session.Store) *Handler {
	return &Handler{
		tracker:  tracker,
		client:   client,
		handoff:  handoff,
		sessions: sessions,
	}
}

// RegisterRoutes mounts the control endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/status", h.handleStatus)
	r.Post("/disconnect", h.handleDisconnect)
	r.Post("/reset", h.handleReset)
	r.Get("/queue", h.handleQueue)
	r.Get("/sessions", h.handleSessions)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.tracker.Current())
}

func (h *Handler) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Disconnect(r.Context()); err != nil {
		log.Printf("[control] disconnect failed: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.client.Reset(r.Context()); err != nil {
		log.Printf("[control] reset failed: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) handleQueue(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.handoff.Entries())
}

// handleSessions reads through Peek semantics only; dashboard polling
// must never refresh a guest's activity deadline.
func (h *Handler) handleSessions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.sessions.All())
}

func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[control] encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, map[string]string{"error": message})
}
