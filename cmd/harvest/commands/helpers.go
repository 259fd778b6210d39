package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/harvest-client/internal/constants"
	"github.com/fivetwenty-io/harvest-client/internal/logging"
	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
	"github.com/fivetwenty-io/harvest-client/pkg/harvestclient"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	Yes = "yes"
	No  = "no"
)

// Common static errors used throughout the commands package.
var (
	ErrURLRequired      = errors.New("harvest URL is required")
	ErrUsernameRequired = errors.New("username is required")
	ErrConflictingFlags = errors.New("--queryable and --viewable cannot be combined")
)

// clientOption tweaks the config createClient builds.
type clientOption func(*harvest.Config)

// createClient builds a client for the configured URL and token.
func createClient(cmd *cobra.Command, opts ...clientOption) (harvest.Client, error) {
	config := loadConfig()
	if config.URL == "" {
		return nil, constants.ErrNoURLConfigured
	}

	harvestConfig := &harvest.Config{
		URL:    config.URL,
		Token:  config.Token,
		Debug:  viper.GetBool("verbose"),
		Logger: newLogger(cmd),
	}

	for _, opt := range opts {
		opt(harvestConfig)
	}

	client, err := harvestclient.New(cmd.Context(), harvestConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func newLogger(cmd *cobra.Command) *logging.Logger {
	logger := logging.New(cmd.ErrOrStderr(), logging.Format(viper.GetString("log-format")), viper.GetBool("verbose"))

	return logger.With(map[string]interface{}{"command": cmd.CommandPath()})
}

// outputFormat returns the selected output format.
func outputFormat() string {
	output := viper.GetString("output")
	if output == "" {
		return OutputFormatTable
	}

	return output
}

// encodeOutput writes value as JSON or YAML when one of those formats is
// selected, and reports whether it did.
func encodeOutput(cmd *cobra.Command, value interface{}) (bool, error) {
	switch outputFormat() {
	case OutputFormatJSON:
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")

		return true, encoder.Encode(value)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(cmd.OutOrStdout())

		return true, encoder.Encode(value)
	case OutputFormatTable:
		return false, nil
	default:
		return true, fmt.Errorf("%w: %s", constants.ErrUnknownOutput, outputFormat())
	}
}

func newTable(cmd *cobra.Command) *tablewriter.Table {
	return tablewriter.NewWriter(cmd.OutOrStdout())
}

func renderTable(table *tablewriter.Table) error {
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func yesNo(value bool) string {
	if value {
		return Yes
	}

	return No
}

func optionalInt(value *int) string {
	if value == nil {
		return NotAvailable
	}

	return strconv.Itoa(*value)
}

func orNotAvailable(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}
