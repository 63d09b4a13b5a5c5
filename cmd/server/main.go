package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jurdabos/countries-visited/internal/api"
	"github.com/jurdabos/countries-visited/internal/factory"
	redisstorage "github.com/jurdabos/countries-visited/internal/storage/redis"
	"github.com/jurdabos/countries-visited/internal/web"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := &serverConfig{}
	if err := newServerCmd(cfg).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *serverConfig) error {
	// Set up logging with JSON output
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Build factory config
	factoryCfg := factory.Config{
		StorageType:   cfg.storage,
		ContainerPath: cfg.containerPath,
		UserStoreType: cfg.users,
		PalettePath:   cfg.palettePath,
		CountriesPath: cfg.countriesPath,
		Logger:        logger,
	}

	if cfg.users == factory.UserStoreTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.redisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}

	// First run creates the container and stores the palette; an
	// existing map is left untouched
	if hexes := app.PaletteSet.Hexes(); len(hexes) > 0 {
		if err := app.PlayerService.Init(ctx, hexes); err != nil {
			logger.Error("failed to store palette", slog.String("error", err.Error()))
			return err
		}
	}

	// Find static files directory
	staticDir := cfg.staticDir
	if staticDir == "" {
		staticDir = findStaticDir()
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		PlayerService:  app.PlayerService,
		MapviewService: app.MapviewService,
		GeoService:     app.GeoService,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		PlayerService:  app.PlayerService,
		MapviewService: app.MapviewService,
		GeoService:     app.GeoService,
		PaletteSet:     app.PaletteSet,
		Storage:        app.Storage,
		StaticDir:      staticDir,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	httpCfg := api.DefaultServerConfig()
	httpCfg.Host = cfg.bind
	httpCfg.Port = cfg.port
	server := api.NewServer(mux, httpCfg, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	// Try common locations
	candidates := []string{
		"internal/web/static",
		"./internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	// Default to relative path
	return "internal/web/static"
}
