package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			var status HealthResult
			if err := client.Get("/api/v1/health", &status); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(status)
			return nil
		},
	}
}
