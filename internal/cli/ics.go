package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dtroode/roster-server/internal/model"
	"github.com/dtroode/roster-server/internal/service"
)

func newIcsCommand(app *App, out printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Manage iCalendar files",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stored calendar files",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				files, err := app.IcsFiles.GetAll(cmd.Context())
				if err != nil {
					return err
				}
				return out(cmd, files)
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show a stored calendar file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				file, err := app.IcsFiles.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				if file == nil {
					return fmt.Errorf("ics file %d: %w", id, model.ErrNotFound)
				}
				return out(cmd, file)
			},
		},
		newIcsImportCommand(app, out),
		&cobra.Command{
			Use:   "publish <id>",
			Short: "Upload a stored calendar file to object storage",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				key, err := app.IcsFiles.Publish(cmd.Context(), id)
				if err != nil {
					return err
				}
				return out(cmd, map[string]any{"id": id, "key": key})
			},
		},
	)

	return cmd
}

func newIcsImportCommand(app *App, out printer) *cobra.Command {
	var (
		name        string
		contentType string
		description string
		createdBy   int
	)

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Store an .ics file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open calendar: %w", err)
			}
			defer f.Close()

			opts := service.ImportOptions{
				FileName:    name,
				ContentType: contentType,
			}
			if cmd.Flags().Changed("description") {
				opts.Description = &description
			}
			if cmd.Flags().Changed("created-by") {
				opts.CreatedByUserID = &createdBy
			}

			file, err := app.IcsFiles.Import(cmd.Context(), args[0], f, opts)
			if err != nil {
				return err
			}
			return out(cmd, file)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "stored file name (defaults to the base name of path)")
	cmd.Flags().StringVar(&contentType, "content-type", "", "content type (defaults to "+model.DefaultContentType+")")
	cmd.Flags().StringVar(&description, "description", "", "file description")
	cmd.Flags().IntVar(&createdBy, "created-by", 0, "id of the user importing the file")

	return cmd
}
