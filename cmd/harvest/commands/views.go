package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewViewsCommand creates the views command group.
func NewViewsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "views",
		Aliases: []string{"view"},
		Short:   "List and inspect query views",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			views, err := client.Views().All(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list views: %w", err)
			}

			handled, err := encodeOutput(cmd, views)
			if handled {
				return err
			}

			if len(views) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No views found")

				return nil
			}

			table := newTable(cmd)
			table.Header("ID", "Name", "Session", "Modified")

			for _, view := range views {
				_ = table.Append(
					strconv.Itoa(view.ID),
					orNotAvailable(view.Name),
					yesNo(view.Session),
					orNotAvailable(view.Modified),
				)
			}

			return renderTable(table)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get VIEW_ID",
		Short: "Get view details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			view, err := client.Views().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get view: %w", err)
			}

			handled, err := encodeOutput(cmd, view)
			if handled {
				return err
			}

			table := newTable(cmd)
			table.Header("Property", "Value")
			_ = table.Append("ID", strconv.Itoa(view.ID))
			_ = table.Append("Name", orNotAvailable(view.Name))
			_ = table.Append("Session", yesNo(view.Session))
			_ = table.Append("Columns", orNotAvailable(string(view.JSON)))

			return renderTable(table)
		},
	})

	return cmd
}
