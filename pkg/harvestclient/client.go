package harvestclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/harvest-client/internal/client"
	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

// New creates a new Harvest client. The config is copied; the caller's value
// is never modified.
func New(ctx context.Context, config *harvest.Config) (harvest.Client, error) {
	if config == nil {
		return nil, harvest.ErrConfigRequired
	}

	if config.URL == "" {
		return nil, harvest.ErrURLRequired
	}

	normalized := *config
	normalized.URL = NormalizeURL(config.URL)

	err := normalized.Validate()
	if err != nil {
		return nil, err
	}

	// Use the internal client implementation
	harvestClient, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return harvestClient, nil
}

// NormalizeURL adds https:// to a URL without a scheme.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	return raw
}

// NewWithURL creates a new client with just a base URL (no auth).
func NewWithURL(ctx context.Context, baseURL string) (harvest.Client, error) {
	return New(ctx, &harvest.Config{
		URL: baseURL,
	})
}

// NewWithToken creates a new client with a base URL and API token.
func NewWithToken(ctx context.Context, baseURL, token string) (harvest.Client, error) {
	return New(ctx, &harvest.Config{
		URL:   baseURL,
		Token: token,
	})
}

// NewWithPassword creates a new client that authenticates with username and
// password on its first request.
func NewWithPassword(ctx context.Context, baseURL, username, password string) (harvest.Client, error) {
	return New(ctx, &harvest.Config{
		URL:      baseURL,
		Username: username,
		Password: password,
	})
}
