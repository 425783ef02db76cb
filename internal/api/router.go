package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/okradley/veilarena/internal/api/handler"
	"github.com/okradley/veilarena/internal/api/middleware"
	"github.com/okradley/veilarena/internal/events"
	"github.com/okradley/veilarena/internal/services/arena"
	"github.com/okradley/veilarena/internal/services/auth"
	"github.com/okradley/veilarena/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	Engine      arena.EngineInterface
	Hub         *events.Hub
	Storage     storage.Storage
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	arenaHandler := handler.NewArenaHandler(cfg.Engine, cfg.Storage)
	eventsHandler := handler.NewEventsHandler(cfg.Hub)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Arena routes (all require auth)
	arenaRoutes := api.PathPrefix("/arena").Subrouter()
	arenaRoutes.Use(authMiddleware)
	arenaRoutes.HandleFunc("/join", arenaHandler.Join).Methods(http.MethodPost)
	arenaRoutes.HandleFunc("/fight", arenaHandler.Fight).Methods(http.MethodPost)
	arenaRoutes.HandleFunc("/heal", arenaHandler.Heal).Methods(http.MethodPost)
	arenaRoutes.HandleFunc("/stats", arenaHandler.GetStats).Methods(http.MethodGet)
	arenaRoutes.HandleFunc("/joined", arenaHandler.GetJoined).Methods(http.MethodGet)
	arenaRoutes.HandleFunc("/balance", arenaHandler.GetBalance).Methods(http.MethodGet)
	arenaRoutes.HandleFunc("/health", arenaHandler.GetHealth).Methods(http.MethodGet)
	arenaRoutes.HandleFunc("/decrypt", arenaHandler.Decrypt).Methods(http.MethodPost)
	arenaRoutes.HandleFunc("/events", arenaHandler.GetEvents).Methods(http.MethodGet)
	arenaRoutes.HandleFunc("/events/stream", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
