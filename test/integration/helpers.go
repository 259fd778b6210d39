//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	URL         string
	Username    string
	Password    string
	HarvestPath string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		URL:         os.Getenv("HARVEST_TEST_URL"),
		Username:    os.Getenv("HARVEST_TEST_USERNAME"),
		Password:    os.Getenv("HARVEST_TEST_PASSWORD"),
		HarvestPath: getHarvestPath(),
		Verbose:     os.Getenv("HARVEST_VERBOSE") == "true",
	}
}

// getHarvestPath determines the path to the harvest binary.
func getHarvestPath() string {
	if path := os.Getenv("HARVEST_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../harvest",
		"./harvest",
		"../harvest",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "harvest"
}

// SkipIfMissingConfig skips the test if the service or the binary is missing.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.URL == "" {
		t.Skip("HARVEST_TEST_URL not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.HarvestPath); err != nil {
		t.Skipf("harvest binary not found at %s, skipping integration test", config.HarvestPath)
	}
}

// CommandRunner runs harvest commands against an isolated config file.
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes a harvest command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configFile}, args...)

	cmd := exec.Command(runner.config.HarvestPath, args...) // #nosec G204 -- test binary

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.HarvestPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// Login authenticates with the configured credentials, or just records the
// URL when the service does not require a login.
func (runner *CommandRunner) Login() error {
	args := []string{"login", "--url", runner.config.URL}
	if runner.config.Username != "" {
		args = append(args, "--username", runner.config.Username, "--password", runner.config.Password)
	} else {
		args = []string{"links", "--url", runner.config.URL}
	}

	_, _, err := runner.Run(args...)

	return err
}

// AssertJSONOutput verifies command output is valid JSON.
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not valid JSON: %s", output)
	}
}
