package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewFieldsCommand creates the fields command.
func NewFieldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "fields",
		Aliases: []string{"field"},
		Short:   "List data fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			fields, err := client.Fields().All(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list fields: %w", err)
			}

			handled, err := encodeOutput(cmd, fields)
			if handled {
				return err
			}

			if len(fields) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No fields found")

				return nil
			}

			table := newTable(cmd)
			table.Header("ID", "Name", "Model", "Field", "Type", "Searchable")

			for _, field := range fields {
				_ = table.Append(
					strconv.Itoa(field.ID),
					field.Name,
					orNotAvailable(joinModel(field.AppName, field.ModelName)),
					orNotAvailable(field.FieldName),
					orNotAvailable(field.SimpleType),
					yesNo(field.Searchable),
				)
			}

			return renderTable(table)
		},
	}
}

func joinModel(appName, modelName string) string {
	if appName == "" || modelName == "" {
		return appName + modelName
	}

	return appName + "." + modelName
}
