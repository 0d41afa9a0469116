package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/userdir-cli/internal/domain"
)

func newLoginCmd(app *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log into the directory API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			result, err := app.directory.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			app.sessions.Login(result.Token, domain.Identity{
				ID:    result.User.ID,
				Email: result.User.Email,
				Role:  result.User.Role,
			})

			if err := app.tokens.SetToken(cmd.Context(), result.Token); err != nil {
				return fmt.Errorf("persist token: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", result.User.Email, result.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the current session and stored credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.sessions.Logout()
			if err := app.tokens.ClearToken(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
