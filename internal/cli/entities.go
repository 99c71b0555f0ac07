package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/roster-server/internal/model"
)

func newUsersCommand(app *App, out printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect users",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all users",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				users, err := app.Users.GetAll(cmd.Context())
				if err != nil {
					return err
				}
				for _, u := range users {
					u.ScrubPassword()
				}
				return out(cmd, users)
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show a single user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				user, err := app.Users.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				if user == nil {
					return fmt.Errorf("user %d: %w", id, model.ErrNotFound)
				}
				user.ScrubPassword()
				return out(cmd, user)
			},
		},
	)

	return cmd
}

func newShiftsCommand(app *App, out printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shifts",
		Short: "Inspect shifts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all shifts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shifts, err := app.Shifts.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			return out(cmd, shifts)
		},
	})
	return cmd
}

func newRostersCommand(app *App, out printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rosters",
		Short: "Inspect rosters",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all rosters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rosters, err := app.Rosters.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			return out(cmd, rosters)
		},
	})
	return cmd
}
