package handler

import (
	"net/http"

	"github.com/okradley/veilarena/internal/api/middleware"
	"github.com/okradley/veilarena/internal/events"
)

// EventsHandler handles the live event stream
type EventsHandler struct {
	hub *events.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *events.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles GET /api/v1/arena/events/stream
// Holds the connection open and pushes arena events as SSE frames.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	events.ServeSSE(w, r, h.hub, player.ID)
}
