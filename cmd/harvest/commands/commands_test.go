package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func TestNewConceptsCommand(t *testing.T) {
	t.Parallel()

	cmd := NewConceptsCommand()
	assert.Equal(t, "concepts", cmd.Use)
	assert.Equal(t, []string{"concept"}, cmd.Aliases)
	assert.NotNil(t, cmd.RunE)

	for _, flagName := range []string{"queryable", "viewable", "search"} {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	get := findSubcommand(cmd, "get")
	require.NotNil(t, get)
	assert.Equal(t, "get CONCEPT_ID", get.Use)
	assert.NotNil(t, get.Args)
}

func TestResourceCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd         *cobra.Command
		use         string
		subcommands []string
	}{
		{NewCategoriesCommand(), "categories", nil},
		{NewFieldsCommand(), "fields", nil},
		{NewContextsCommand(), "contexts", []string{"get"}},
		{NewViewsCommand(), "views", []string{"get"}},
		{NewQueriesCommand(), "queries", []string{"get"}},
		{NewDataCommand(), "data", []string{"preview", "export"}},
		{NewStatsCommand(), "stats", nil},
		{NewPingCommand(), "ping", nil},
		{NewLinksCommand(), "links", nil},
		{NewConfigCommand(), "config", []string{"show", "clear"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.use, tt.cmd.Use)
		assert.Len(t, tt.cmd.Commands(), len(tt.subcommands), tt.use)

		for _, name := range tt.subcommands {
			assert.NotNil(t, findSubcommand(tt.cmd, name), "%s %s should exist", tt.use, name)
		}
	}

	assert.NotNil(t, findSubcommand(NewQueriesCommand(), "get"))
	assert.NotNil(t, NewQueriesCommand().Flags().Lookup("public"))
}

func TestNewLoginCommand(t *testing.T) {
	t.Parallel()

	cmd := NewLoginCommand()
	assert.Equal(t, "login", cmd.Use)

	for _, flagName := range []string{"url", "username", "password"} {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	assert.Equal(t, "logout", NewLogoutCommand().Use)
}

func TestNewMonitorCommand(t *testing.T) {
	t.Parallel()

	cmd := NewMonitorCommand()
	assert.Equal(t, "monitor", cmd.Use)

	interval := cmd.Flags().Lookup("interval")
	require.NotNil(t, interval)
	assert.Equal(t, "30s", interval.DefValue)

	prefix := cmd.Flags().Lookup("subject-prefix")
	require.NotNil(t, prefix)
	assert.Equal(t, "harvest.session", prefix.DefValue)

	assert.NotNil(t, cmd.Flags().Lookup("nats-url"))
	assert.NotNil(t, cmd.Flags().Lookup("metrics-addr"))
}

func TestFormatHelpers(t *testing.T) {
	t.Parallel()

	count := 7

	assert.Equal(t, Yes, yesNo(true))
	assert.Equal(t, No, yesNo(false))
	assert.Equal(t, "7", optionalInt(&count))
	assert.Equal(t, NotAvailable, optionalInt(nil))
	assert.Equal(t, NotAvailable, orNotAvailable(""))
	assert.Equal(t, "patients.patient", joinModel("patients", "patient"))
	assert.Equal(t, "patient", joinModel("", "patient"))
	assert.Equal(t, NotAvailable, categoryName(nil))
	assert.Equal(t, []string{"a", "b"}, sortedKeys(map[string]string{"b": "", "a": ""}))
}
