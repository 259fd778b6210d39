package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// NewLinksCommand creates the links command.
func NewLinksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "List discovered relations",
		Long:  "Display the links and link templates advertised by the service",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			relations, err := client.Links(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to discover links: %w", err)
			}

			handled, err := encodeOutput(cmd, relations)
			if handled {
				return err
			}

			table := newTable(cmd)
			table.Header("Relation", "Kind", "URL")

			for _, rel := range sortedKeys(relations.Links) {
				_ = table.Append(rel, "link", relations.Links[rel])
			}

			for _, rel := range sortedKeys(relations.Templates) {
				_ = table.Append(rel, "template", relations.Templates[rel])
			}

			return renderTable(table)
		},
	}
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
