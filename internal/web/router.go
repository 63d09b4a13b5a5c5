package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jurdabos/countries-visited/internal/palette"
	"github.com/jurdabos/countries-visited/internal/services/auth"
	"github.com/jurdabos/countries-visited/internal/services/geo"
	"github.com/jurdabos/countries-visited/internal/services/mapview"
	"github.com/jurdabos/countries-visited/internal/services/player"
	"github.com/jurdabos/countries-visited/internal/storage"
	"github.com/jurdabos/countries-visited/internal/web/handler"
	"github.com/jurdabos/countries-visited/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	PlayerService  *player.Service
	MapviewService *mapview.Service
	GeoService     *geo.Service
	PaletteSet     palette.Set
	Storage        storage.Storage
	StaticDir      string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.PlayerService, cfg.MapviewService, cfg.GeoService, cfg.PaletteSet)
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	mapFileHandler := handler.NewMapFileHandler(cfg.PlayerService, cfg.Storage, cfg.PaletteSet)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes (optional auth for showing account info in nav)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	public.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)

	// Auth actions
	authRoutes := r.PathPrefix("/auth").Subrouter()
	authRoutes.Use(flashMiddleware)
	authRoutes.Use(optionalAuthMiddleware)
	authRoutes.HandleFunc("/guest", authHandler.CreateGuest).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Protected routes (require a session)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/players/{id}/visits", playerHandler.UpdateVisits).Methods(http.MethodPost)
	protected.HandleFunc("/players/{id}/clear", playerHandler.Clear).Methods(http.MethodPost)
	protected.HandleFunc("/players/{id}/delete", playerHandler.Delete).Methods(http.MethodPost)
	protected.HandleFunc("/map/reset", mapFileHandler.Reset).Methods(http.MethodPost)
	protected.HandleFunc("/map/download", mapFileHandler.Download).Methods(http.MethodGet)
	protected.HandleFunc("/map/upload", mapFileHandler.Upload).Methods(http.MethodPost)

	return r
}
