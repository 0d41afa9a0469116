package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the directory API is reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			message, err := app.directory.Health(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}
}
