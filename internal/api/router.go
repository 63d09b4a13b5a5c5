package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jurdabos/countries-visited/internal/api/handler"
	"github.com/jurdabos/countries-visited/internal/api/middleware"
	"github.com/jurdabos/countries-visited/internal/services/auth"
	"github.com/jurdabos/countries-visited/internal/services/geo"
	"github.com/jurdabos/countries-visited/internal/services/mapview"
	"github.com/jurdabos/countries-visited/internal/services/player"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	PlayerService  *player.Service
	MapviewService *mapview.Service
	GeoService     *geo.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	mapHandler := handler.NewMapHandler(cfg.PlayerService, cfg.MapviewService, cfg.GeoService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required to obtain a session)
	api.HandleFunc("/auth/guest", authHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Protected auth routes
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/me", authHandler.GetMe).Methods(http.MethodGet)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Player routes (all require auth)
	players := api.PathPrefix("/players").Subrouter()
	players.Use(authMiddleware)
	players.HandleFunc("", playerHandler.List).Methods(http.MethodGet)
	players.HandleFunc("", playerHandler.Create).Methods(http.MethodPost)
	players.HandleFunc("/suggest-colour", playerHandler.SuggestColour).Methods(http.MethodGet)
	players.HandleFunc("/{id}", playerHandler.Get).Methods(http.MethodGet)
	players.HandleFunc("/{id}", playerHandler.Delete).Methods(http.MethodDelete)
	players.HandleFunc("/{id}/visits", playerHandler.UpdateVisits).Methods(http.MethodPut)
	players.HandleFunc("/{id}/visits", playerHandler.ClearVisits).Methods(http.MethodDelete)
	players.HandleFunc("/{id}/stats", mapHandler.GetStats).Methods(http.MethodGet)

	// Map and catalogue routes (all require auth)
	maps := api.NewRoute().Subrouter()
	maps.Use(authMiddleware)
	maps.HandleFunc("/map", mapHandler.GetMap).Methods(http.MethodGet)
	maps.HandleFunc("/map/overlaps", mapHandler.GetOverlaps).Methods(http.MethodGet)
	maps.HandleFunc("/countries", mapHandler.GetCountries).Methods(http.MethodGet)
	maps.HandleFunc("/palette", playerHandler.Palette).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
