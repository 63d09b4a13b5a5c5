package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/jurdabos/countries-visited/internal/dependencies/clock"
	"github.com/jurdabos/countries-visited/internal/dependencies/random"
	"github.com/jurdabos/countries-visited/internal/palette"
	"github.com/jurdabos/countries-visited/internal/services/auth"
	"github.com/jurdabos/countries-visited/internal/services/geo"
	"github.com/jurdabos/countries-visited/internal/services/mapview"
	"github.com/jurdabos/countries-visited/internal/services/player"
	"github.com/jurdabos/countries-visited/internal/storage"
	"github.com/jurdabos/countries-visited/internal/storage/containerfile"
	"github.com/jurdabos/countries-visited/internal/storage/memory"
	redisstorage "github.com/jurdabos/countries-visited/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory    = "memory"
	StorageTypeContainer = "container"

	UserStoreTypeMemory = "memory"
	UserStoreTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage   storage.Storage
	UserStore storage.UserStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Loaded data
	PaletteSet palette.Set

	// Services
	AuthService    *auth.Service
	PlayerService  *player.Service
	MapviewService *mapview.Service
	GeoService     *geo.Service
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the player data backend ("memory" or "container")
	// If empty, defaults to "memory"
	StorageType string
	// ContainerPath is the container file path (required if StorageType is "container")
	ContainerPath string
	// UserStoreType selects the account backend ("memory" or "redis")
	// If empty, defaults to "memory"
	UserStoreType string
	// RedisConfig holds Redis connection settings (required if UserStoreType is "redis")
	RedisConfig *redisstorage.Config
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// PalettePath is the palette JSON file (optional)
	PalettePath string
	// CountriesPath is the GeoJSON country data file (optional)
	// If empty, country data must be loaded manually
	CountriesPath string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create player storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeContainer:
		if cfg.ContainerPath == "" {
			return nil, errors.New("ContainerPath required when StorageType is container")
		}
		store = containerfile.New(cfg.ContainerPath, logger)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'container'")
	}

	// Create user store based on type
	var users storage.UserStore
	userStoreType := cfg.UserStoreType
	if userStoreType == "" {
		userStoreType = UserStoreTypeMemory
	}

	switch userStoreType {
	case UserStoreTypeMemory:
		if mem, ok := store.(*memory.Storage); ok {
			users = mem
		} else {
			users = memory.New()
		}
	case UserStoreTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when UserStoreType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		users = redisStore
	default:
		return nil, errors.New("invalid UserStoreType: must be 'memory' or 'redis'")
	}

	// Load the palette (missing file yields an empty set, not an error)
	paletteSet := palette.Set{}
	if cfg.PalettePath != "" {
		paletteSet = palette.Load(cfg.PalettePath, logger)
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	app := newWithDependencies(store, users, clk, rnd, authCfg, paletteSet)

	if cfg.CountriesPath != "" {
		if err := app.GeoService.LoadFromFile(cfg.CountriesPath); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	users storage.UserStore,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	paletteSet palette.Set,
) *App {
	// Create services
	authService := auth.New(users, clk, authCfg)
	playerService := player.New(store, clk, rnd)
	mapviewService := mapview.New()
	geoService := geo.New()

	return &App{
		Storage:        store,
		UserStore:      users,
		Clock:          clk,
		Random:         rnd,
		PaletteSet:     paletteSet,
		AuthService:    authService,
		PlayerService:  playerService,
		MapviewService: mapviewService,
		GeoService:     geoService,
	}
}
