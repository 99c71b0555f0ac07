package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dtroode/roster-server/database"
)

// NewRootCommand builds the roster command tree on top of app.
func NewRootCommand(app *App) *cobra.Command {
	var output string

	root := &cobra.Command{
		Use:           "roster",
		Short:         "Manage users, shifts, rosters and calendar files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return checkOutput(output)
		},
	}
	root.PersistentFlags().StringVarP(&output, "output", "o", outputJSON, "output format (json|yaml)")

	out := func(cmd *cobra.Command, v any) error {
		return render(cmd.OutOrStdout(), output, v)
	}

	root.AddCommand(
		newMigrateCommand(app),
		newUsersCommand(app, out),
		newShiftsCommand(app, out),
		newRostersCommand(app, out),
		newIcsCommand(app, out),
		newVersionCommand(app, out),
	)

	return root
}

type printer func(cmd *cobra.Command, v any) error

func newMigrateCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all up migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.Migrate(cmd.Context(), app.DB, app.Dialect, app.Logger); err != nil {
				return err
			}
			app.Logger.Info("migrations applied", "dialect", app.Dialect.Name())
			return nil
		},
	})
	return cmd
}

func newVersionCommand(app *App, out printer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return out(cmd, app.Build)
		},
	}
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return id, nil
}
