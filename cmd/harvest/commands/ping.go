package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPingCommand creates the ping command.
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the session",
		Long:  "Ping the service and report whether the session is still valid",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			status, err := client.Ping(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to ping: %w", err)
			}

			handled, err := encodeOutput(cmd, status)
			if handled {
				return err
			}

			table := newTable(cmd)
			table.Header("Property", "Value")
			_ = table.Append("Status", status.Status)
			_ = table.Append("Location", orNotAvailable(status.Location))

			return renderTable(table)
		},
	}
}
