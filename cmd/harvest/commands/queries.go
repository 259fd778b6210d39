package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

// NewQueriesCommand creates the queries command group.
func NewQueriesCommand() *cobra.Command {
	var public bool

	cmd := &cobra.Command{
		Use:     "queries",
		Aliases: []string{"query"},
		Short:   "List and inspect saved queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			var queries []harvest.Query
			if public {
				queries, err = client.Queries().Public(cmd.Context())
			} else {
				queries, err = client.Queries().All(cmd.Context())
			}

			if err != nil {
				return fmt.Errorf("failed to list queries: %w", err)
			}

			handled, err := encodeOutput(cmd, queries)
			if handled {
				return err
			}

			if len(queries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No queries found")

				return nil
			}

			table := newTable(cmd)
			table.Header("ID", "Name", "Public", "Records", "Modified")

			for _, query := range queries {
				_ = table.Append(
					strconv.Itoa(query.ID),
					orNotAvailable(query.Name),
					yesNo(query.Public),
					optionalInt(query.RecordCount),
					orNotAvailable(query.Modified),
				)
			}

			return renderTable(table)
		},
	}

	cmd.Flags().BoolVar(&public, "public", false, "list public queries")

	cmd.AddCommand(&cobra.Command{
		Use:   "get QUERY_ID",
		Short: "Get query details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			query, err := client.Queries().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get query: %w", err)
			}

			handled, err := encodeOutput(cmd, query)
			if handled {
				return err
			}

			table := newTable(cmd)
			table.Header("Property", "Value")
			_ = table.Append("ID", strconv.Itoa(query.ID))
			_ = table.Append("Name", orNotAvailable(query.Name))
			_ = table.Append("Description", orNotAvailable(query.Description))
			_ = table.Append("Public", yesNo(query.Public))
			_ = table.Append("Records", optionalInt(query.RecordCount))
			_ = table.Append("Distinct", optionalInt(query.DistinctCount))

			return renderTable(table)
		},
	})

	return cmd
}
