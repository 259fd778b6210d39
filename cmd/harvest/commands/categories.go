package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "List concept categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			categories, err := client.Categories().All(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			handled, err := encodeOutput(cmd, categories)
			if handled {
				return err
			}

			if len(categories) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No categories found")

				return nil
			}

			table := newTable(cmd)
			table.Header("ID", "Name", "Order", "Parent")

			for _, category := range categories {
				_ = table.Append(
					strconv.Itoa(category.ID),
					category.Name,
					strconv.FormatFloat(category.Order, 'f', -1, 64),
					optionalInt(category.Parent),
				)
			}

			return renderTable(table)
		},
	}
}
