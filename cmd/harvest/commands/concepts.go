package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

// NewConceptsCommand creates the concepts command group.
func NewConceptsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "concepts",
		Aliases: []string{"concept"},
		Short:   "List and inspect data concepts",
		Long:    "List all concepts, only queryable or viewable ones, or search them by name",
		RunE:    runListConcepts,
	}

	cmd.Flags().Bool("queryable", false, "only list queryable concepts")
	cmd.Flags().Bool("viewable", false, "only list viewable concepts")
	cmd.Flags().String("search", "", "search concepts by text")

	cmd.AddCommand(newConceptsGetCommand())

	return cmd
}

func runListConcepts(cmd *cobra.Command, args []string) error {
	queryable, _ := cmd.Flags().GetBool("queryable")
	viewable, _ := cmd.Flags().GetBool("viewable")
	search, _ := cmd.Flags().GetString("search")

	if queryable && viewable {
		return ErrConflictingFlags
	}

	client, err := createClient(cmd)
	if err != nil {
		return err
	}

	var concepts []harvest.Concept

	switch {
	case search != "":
		concepts, err = client.Concepts().Search(cmd.Context(), search)
	case queryable:
		concepts, err = client.Concepts().Queryable(cmd.Context())
	case viewable:
		concepts, err = client.Concepts().Viewable(cmd.Context())
	default:
		concepts, err = client.Concepts().All(cmd.Context())
	}

	if err != nil {
		return fmt.Errorf("failed to list concepts: %w", err)
	}

	handled, err := encodeOutput(cmd, concepts)
	if handled {
		return err
	}

	if len(concepts) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No concepts found")

		return nil
	}

	table := newTable(cmd)
	table.Header("ID", "Name", "Category", "Queryable", "Viewable")

	for _, concept := range concepts {
		_ = table.Append(
			strconv.Itoa(concept.ID),
			concept.Name,
			categoryName(concept.Category),
			yesNo(concept.Queryable),
			yesNo(concept.Viewable),
		)
	}

	return renderTable(table)
}

func newConceptsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CONCEPT_ID",
		Short: "Get concept details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			concept, err := client.Concepts().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get concept: %w", err)
			}

			handled, err := encodeOutput(cmd, concept)
			if handled {
				return err
			}

			table := newTable(cmd)
			table.Header("Property", "Value")
			_ = table.Append("ID", strconv.Itoa(concept.ID))
			_ = table.Append("Name", concept.Name)
			_ = table.Append("Description", orNotAvailable(concept.Description))
			_ = table.Append("Category", categoryName(concept.Category))
			_ = table.Append("Queryable", yesNo(concept.Queryable))
			_ = table.Append("Viewable", yesNo(concept.Viewable))
			_ = table.Append("Sortable", yesNo(concept.Sortable))
			_ = table.Append("Fields", strconv.Itoa(len(concept.Fields)))

			return renderTable(table)
		},
	}
}

func categoryName(category *harvest.Category) string {
	if category == nil {
		return NotAvailable
	}

	return category.Name
}
