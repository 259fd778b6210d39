package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewDataCommand creates the data command group.
func NewDataCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Preview and export data",
		Long:  "Preview or export the rows matched by the session context and view",
	}

	cmd.AddCommand(newDataPreviewCommand())
	cmd.AddCommand(newDataExportCommand())

	return cmd
}

func newDataPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Preview the current result set",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			preview, err := client.Data().Preview(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get preview: %w", err)
			}

			handled, err := encodeOutput(cmd, preview)
			if handled {
				return err
			}

			if len(preview.Items) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No %s found\n", orNotAvailable(preview.ItemNamePlural))

				return nil
			}

			table := newTable(cmd)
			table.Header("PK", "Values")

			for _, item := range preview.Items {
				values := make([]string, 0, len(item.Values))
				for _, value := range item.Values {
					values = append(values, fmt.Sprint(value))
				}

				_ = table.Append(fmt.Sprint(item.PK), strings.Join(values, ", "))
			}

			err = renderTable(table)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Page %s, %d %s\n",
				strconv.Itoa(preview.Page), len(preview.Items), orNotAvailable(preview.ItemNamePlural))

			return nil
		},
	}
}

func newDataExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export FORMAT",
		Short: "Export the current result set",
		Long:  "Export the current result set in the given format, for example csv",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			export, err := client.Data().Export(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to export data: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(append(export, '\n'))
			if err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}

			return nil
		},
	}
}
