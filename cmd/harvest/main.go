package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/harvest-client/cmd/harvest/commands"
	"github.com/fivetwenty-io/harvest-client/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Harvest API CLI",
	Long: `A command-line interface for interacting with a Harvest data service.

This CLI discovers the service's relations and provides access to concepts,
fields, contexts, views, queries, data previews and exports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.harvest/config.yml)")
	rootCmd.PersistentFlags().StringP("url", "u", "", "Harvest API URL")
	rootCmd.PersistentFlags().StringP("token", "t", "", "API token")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewLogoutCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewPingCommand())
	rootCmd.AddCommand(commands.NewLinksCommand())
	rootCmd.AddCommand(commands.NewCategoriesCommand())
	rootCmd.AddCommand(commands.NewFieldsCommand())
	rootCmd.AddCommand(commands.NewConceptsCommand())
	rootCmd.AddCommand(commands.NewContextsCommand())
	rootCmd.AddCommand(commands.NewViewsCommand())
	rootCmd.AddCommand(commands.NewQueriesCommand())
	rootCmd.AddCommand(commands.NewDataCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewMonitorCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".harvest")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		}

		// Search config in ~/.harvest/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("HARVEST")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err == nil && viper.GetBool("verbose") {
		_, _ = fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
