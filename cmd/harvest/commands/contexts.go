package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewContextsCommand creates the contexts command group.
func NewContextsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contexts",
		Aliases: []string{"context"},
		Short:   "List and inspect query contexts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			contexts, err := client.Contexts().All(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list contexts: %w", err)
			}

			handled, err := encodeOutput(cmd, contexts)
			if handled {
				return err
			}

			if len(contexts) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No contexts found")

				return nil
			}

			table := newTable(cmd)
			table.Header("ID", "Name", "Session", "Count", "Modified")

			for _, queryContext := range contexts {
				_ = table.Append(
					strconv.Itoa(queryContext.ID),
					orNotAvailable(queryContext.Name),
					yesNo(queryContext.Session),
					optionalInt(queryContext.Count),
					orNotAvailable(queryContext.Modified),
				)
			}

			return renderTable(table)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get CONTEXT_ID",
		Short: "Get context details",
		Long:  "Get a context by ID, or the current session context with \"session\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			queryContext, err := client.Contexts().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get context: %w", err)
			}

			handled, err := encodeOutput(cmd, queryContext)
			if handled {
				return err
			}

			table := newTable(cmd)
			table.Header("Property", "Value")
			_ = table.Append("ID", strconv.Itoa(queryContext.ID))
			_ = table.Append("Name", orNotAvailable(queryContext.Name))
			_ = table.Append("Session", yesNo(queryContext.Session))
			_ = table.Append("Count", optionalInt(queryContext.Count))
			_ = table.Append("Tree", orNotAvailable(string(queryContext.JSON)))

			return renderTable(table)
		},
	})

	return cmd
}
