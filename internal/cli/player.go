package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Map player commands",
	}

	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerShowCmd())
	cmd.AddCommand(newPlayerVisitsCmd())
	cmd.AddCommand(newPlayerClearCmd())
	cmd.AddCommand(newPlayerRemoveCmd())
	cmd.AddCommand(newPlayerStatsCmd())
	cmd.AddCommand(newPlayerSuggestCmd())

	return cmd
}

func playerPath(id string, parts ...string) string {
	p := "/api/v1/players/" + url.PathEscape(id)
	if len(parts) > 0 {
		p += "/" + strings.Join(parts, "/")
	}
	return p
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all players on the map",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerList

			if err := client.Get("/api/v1/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerAddCmd() *cobra.Command {
	var colour string

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a player to the map",
		Long: `Add a player to the map with a hex colour like #7ebce6.
When --colour is omitted the server picks a free palette colour.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"player_id": args[0]}
			if colour != "" {
				req["colour"] = colour
			}
			var result Player

			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&colour, "colour", "", "Hex colour, e.g. #7ebce6 (server picks one when omitted)")

	return cmd
}

func newPlayerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one player and their visited countries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get(playerPath(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerVisitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visits <id> <code>...",
		Short: "Replace a player's visited countries",
		Long: `Replace a player's visited set with the given ISO 3166-1 alpha-2 codes.
Example: visited player visits alice ES FR JP`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string][]string{"codes": args[1:]}
			var result Player

			if err := client.Put(playerPath(args[0], "visits"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <id>",
		Short: "Clear a player's visited countries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(playerPath(args[0], "visits")); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Cleared visits for %s", args[0]))
			return nil
		},
	}
}

func newPlayerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a player from the map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(playerPath(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Removed player %s", args[0]))
			return nil
		},
	}
}

func newPlayerStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <id>",
		Short: "Show a player's coverage statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Stats

			if err := client.Get(playerPath(args[0], "stats"), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Suggest a free palette colour",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ColourSuggestion

			if err := client.Get("/api/v1/players/suggest-colour", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
