package cli

import (
	"github.com/spf13/cobra"
)

func newMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Rendered map commands",
	}

	cmd.AddCommand(newMapShowCmd())
	cmd.AddCommand(newMapOverlapsCmd())
	cmd.AddCommand(newMapCountriesCmd())
	cmd.AddCommand(newMapPaletteCmd())

	return cmd
}

func newMapShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the per-country fill colours",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MapState

			if err := client.Get("/api/v1/map", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMapOverlapsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overlaps",
		Short: "Show countries visited by more than one player",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result OverlapList

			if err := client.Get("/api/v1/map/overlaps", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMapCountriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the selectable countries",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CountryList

			if err := client.Get("/api/v1/countries", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMapPaletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Show the stored colour palette",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PaletteResult

			if err := client.Get("/api/v1/palette", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
