package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/okradley/veilarena/internal/api/middleware"
	"github.com/okradley/veilarena/internal/api/request"
	"github.com/okradley/veilarena/internal/api/response"
	"github.com/okradley/veilarena/internal/fhe"
	"github.com/okradley/veilarena/internal/model"
	"github.com/okradley/veilarena/internal/services/arena"
	"github.com/okradley/veilarena/internal/storage"
)

// ArenaHandler handles arena gameplay endpoints
type ArenaHandler struct {
	engine  arena.EngineInterface
	storage storage.Storage
}

// NewArenaHandler creates a new arena handler
func NewArenaHandler(engine arena.EngineInterface, store storage.Storage) *ArenaHandler {
	return &ArenaHandler{
		engine:  engine,
		storage: store,
	}
}

// Join handles POST /api/v1/arena/join
func (h *ArenaHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	record, err := h.engine.Join(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.JoinResponseFromRecord(record))
}

// Fight handles POST /api/v1/arena/fight
func (h *ArenaHandler) Fight(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	result, err := h.engine.FightMonster(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FightResponseFromResult(result))
}

// Heal handles POST /api/v1/arena/heal
func (h *ArenaHandler) Heal(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	totalHeals, err := h.engine.Heal(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HealResponse{TotalHeals: totalHeals})
}

// GetStats handles GET /api/v1/arena/stats
func (h *ArenaHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	stats, err := h.engine.PlayerStats(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsFromModel(stats))
}

// GetJoined handles GET /api/v1/arena/joined
func (h *ArenaHandler) GetJoined(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	joined, err := h.engine.HasJoined(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinedResponse{Joined: joined})
}

// GetBalance handles GET /api/v1/arena/balance
// Returns the opaque ciphertext handle, never the plaintext value.
func (h *ArenaHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	handle, err := h.engine.EncryptedBalance(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CiphertextResponseFromHandle(handle))
}

// GetHealth handles GET /api/v1/arena/health
// Returns the opaque ciphertext handle, never the plaintext value.
func (h *ArenaHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	handle, err := h.engine.EncryptedHealth(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CiphertextResponseFromHandle(handle))
}

// Decrypt handles POST /api/v1/arena/decrypt
// Succeeds only for handles the caller has been granted access to.
func (h *ArenaHandler) Decrypt(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.DecryptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Handle == "" {
		WriteError(w, NewInvalidRequestError("handle is required"))
		return
	}

	value, err := h.engine.Decrypt(r.Context(), player.ID, fhe.Handle(req.Handle))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DecryptResponse{
		Handle: req.Handle,
		Value:  value,
	})
}

// GetEvents handles GET /api/v1/arena/events
// Returns recent arena events, newest first. Accepts an optional
// limit query parameter.
func (h *ArenaHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	events, err := h.storage.RecentEvents(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.EventsResponse{Events: make([]model.Event, 0, len(events))}
	for _, event := range events {
		resp.Events = append(resp.Events, *event)
	}

	response.JSON(w, http.StatusOK, resp)
}
