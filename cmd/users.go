package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	render "github.com/bnema/userdir-cli/internal/adapters/render/users"
	"github.com/bnema/userdir-cli/internal/domain"
)

func newUsersCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage directory accounts (admin only)",
	}

	cmd.AddCommand(
		newUsersListCmd(app),
		newUsersCreateCmd(app),
		newUsersUpdateCmd(app),
		newUsersDeleteCmd(app),
	)

	return cmd
}

func newUsersListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List directory accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.LoadAll(cmd.Context()); err != nil {
				return usersError(app, err)
			}
			if !app.sessions.IsAdmin() {
				return fmt.Errorf("users list: admin access required")
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Render(app.service.Users()))
			return nil
		},
	}
}

func newUsersCreateCmd(app *app) *cobra.Command {
	var email, password, role string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a directory account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.Create(cmd.Context(), email, password, domain.Role(role)); err != nil {
				return usersError(app, err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), app.service.State().LastMessage)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&role, "role", "user", "Account role (user or admin)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newUsersUpdateCmd(app *app) *cobra.Command {
	var email, password, role string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a directory account, sending only changed fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}

			if err := app.service.LoadAll(cmd.Context()); err != nil {
				return usersError(app, err)
			}

			target, ok := app.service.UserByID(id)
			if !ok {
				return fmt.Errorf("user %d: %w", id, domain.ErrUserNotFound)
			}

			app.service.StartEdit(target)
			app.service.UpdateDraft(email, password, domain.Role(role))

			if err := app.service.Save(cmd.Context()); err != nil {
				app.service.CancelEdit()
				return usersError(app, err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), app.service.State().LastMessage)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "New email (unchanged when omitted)")
	cmd.Flags().StringVar(&password, "password", "", "New password (unchanged when omitted)")
	cmd.Flags().StringVar(&role, "role", "", "New role (unchanged when omitted)")

	return cmd
}

func newUsersDeleteCmd(app *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a directory account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}

			if err := app.service.LoadAll(cmd.Context()); err != nil {
				return usersError(app, err)
			}

			app.confirm.assumeYes = yes
			if err := app.service.Delete(cmd.Context(), id); err != nil {
				return usersError(app, err)
			}

			if message := app.service.State().LastMessage; message != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), message)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func parseUserID(raw string) (domain.UserID, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse user id %q: %w", raw, err)
	}
	return domain.UserID(id), nil
}

// usersError prefers the engine's derived user-facing message over the raw
// error chain.
func usersError(app *app, err error) error {
	if message := app.service.State().LastError; message != "" {
		return fmt.Errorf("%s", message)
	}
	return err
}
