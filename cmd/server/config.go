package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jurdabos/countries-visited/internal/factory"
)

type serverConfig struct {
	bind          string
	port          int
	storage       string
	containerPath string
	users         string
	redisURL      string
	palettePath   string
	countriesPath string
	staticDir     string
	verbose       bool
}

func (c *serverConfig) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.storage == factory.StorageTypeContainer && c.containerPath == "" {
		return errors.New("--container-path is required when --storage=container")
	}
	if c.users == factory.UserStoreTypeRedis && c.redisURL == "" {
		return errors.New("--redis-url is required when --users=redis")
	}
	return nil
}

func newServerCmd(cfg *serverConfig) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("VISITED")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "visited-server",
		Short:         "Web app for marking the countries each player has visited on a shared map.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "", "address to bind to (env: VISITED_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: VISITED_PORT)")
	fs.StringVar(&cfg.storage, "storage", factory.StorageTypeContainer, "player data backend: memory, container (env: VISITED_STORAGE)")
	fs.StringVar(&cfg.containerPath, "container-path", "data/visited.cvc", "container file for player data (env: VISITED_CONTAINER_PATH)")
	fs.StringVar(&cfg.users, "users", factory.UserStoreTypeMemory, "account backend: memory, redis (env: VISITED_USERS)")
	fs.StringVar(&cfg.redisURL, "redis-url", "", "redis connection URL for accounts (env: VISITED_REDIS_URL)")
	fs.StringVar(&cfg.palettePath, "palettes", "data/palettes.json", "palette JSON file (env: VISITED_PALETTES)")
	fs.StringVar(&cfg.countriesPath, "countries", "data/countries.geojson", "GeoJSON country data file (env: VISITED_COUNTRIES)")
	fs.StringVar(&cfg.staticDir, "static-dir", "", "static assets directory, autodetected when empty (env: VISITED_STATIC_DIR)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "debug-level logging (env: VISITED_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	cmd.SilenceUsage = true

	return cmd
}
