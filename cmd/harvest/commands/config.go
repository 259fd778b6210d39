package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/harvest-client/internal/constants"
)

const (
	configDirName  = ".harvest"
	configFileName = "config.yml"
)

// Config represents the CLI configuration.
type Config struct {
	URL      string `json:"url,omitempty"      yaml:"url,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Token    string `json:"token,omitempty"    yaml:"token,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show or clear the saved Harvest CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the saved CLI configuration with the token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Token != "" {
				config.Token = masked
			}

			handled, err := encodeOutput(cmd, config)
			if handled {
				return err
			}

			table := newTable(cmd)
			table.Header("Property", "Value")
			_ = table.Append("URL", orNotAvailable(config.URL))
			_ = table.Append("Username", orNotAvailable(config.Username))
			_ = table.Append("Token", orNotAvailable(config.Token))
			_ = table.Append("Config File", orNotAvailable(viper.ConfigFileUsed()))

			return renderTable(table)
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove the saved CLI configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, err := configFilePath()
			if err != nil {
				return err
			}

			err = os.Remove(configFile)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cleared configuration")

			return nil
		},
	}
}

const masked = "***"

func loadConfig() *Config {
	return &Config{
		URL:      viper.GetString("url"),
		Username: viper.GetString("username"),
		Token:    viper.GetString("token"),
	}
}

// configFilePath returns the file the configuration is read from, or the
// default location under the home directory.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, configDirName, configFileName), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	viper.Set("url", config.URL)
	viper.Set("username", config.Username)
	viper.Set("token", config.Token)

	return nil
}
