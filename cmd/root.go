package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ua",
		Short:         "User Directory Admin CLI (ua): manage directory accounts",
		Long:          "ua (User Directory Admin CLI) logs into a user-directory API and lets administrators list, create, update and delete accounts from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newHealthCmd(app),
		newUsersCmd(app),
	)

	return rootCmd
}
