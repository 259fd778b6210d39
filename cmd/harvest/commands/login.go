package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
	"github.com/fivetwenty-io/harvest-client/pkg/harvestclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		baseURL  string
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Harvest",
		Long:  "Authenticate with a Harvest service and save the issued token",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())

			if baseURL == "" {
				baseURL = viper.GetString("url")
			}

			if baseURL == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Harvest URL: ")
				baseURL = readLine(reader)
			}

			if baseURL == "" {
				return ErrURLRequired
			}

			if username == "" {
				username = viper.GetString("username")
			}

			if username == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Username: ")
				username = readLine(reader)
			}

			if username == "" {
				return ErrUsernameRequired
			}

			if password == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Password: ")

				var err error

				password, err = readPassword(reader)
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}

			client, err := harvestclient.New(cmd.Context(), &harvest.Config{
				URL:      baseURL,
				Username: username,
				Password: password,
				Debug:    viper.GetBool("verbose"),
				Logger:   newLogger(cmd),
			})
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			relations, err := client.Links(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}

			config := loadConfig()
			config.URL = harvestclient.NormalizeURL(baseURL)
			config.Username = username
			config.Token = client.Token()

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %s (%d relations)\n",
				config.URL, username, len(relations.Links)+len(relations.Templates))

			return nil
		},
	}

	cmd.Flags().StringVarP(&baseURL, "url", "u", "", "Harvest URL")
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from Harvest",
		Long:  "Remove the saved token",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Token = ""

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')

	return strings.TrimSpace(line)
}

// readPassword reads without echo from a terminal and falls back to a plain
// line otherwise.
func readPassword(reader *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd()) // #nosec G115 -- file descriptors fit in int
	if term.IsTerminal(fd) {
		bytePassword, err := term.ReadPassword(fd)
		if err != nil {
			return "", fmt.Errorf("reading from terminal: %w", err)
		}

		return string(bytePassword), nil
	}

	return readLine(reader), nil
}
