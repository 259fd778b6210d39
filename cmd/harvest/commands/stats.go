package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts",
		Long:  "Show the number of records of each model exposed by the service",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			counts, err := client.Stats().Counts(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get stats: %w", err)
			}

			handled, err := encodeOutput(cmd, counts)
			if handled {
				return err
			}

			table := newTable(cmd)
			table.Header("Model", "Name", "Count")

			for _, count := range counts {
				_ = table.Append(
					joinModel(count.AppName, count.ModelName),
					orNotAvailable(count.VerboseNamePlural),
					strconv.Itoa(count.Count),
				)
			}

			return renderTable(table)
		},
	}
}
