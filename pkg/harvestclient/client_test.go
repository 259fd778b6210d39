package harvestclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
	"github.com/fivetwenty-io/harvest-client/pkg/harvestclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		config := &harvest.Config{
			URL: "https://harvest.example.org/api/",
		}

		client, err := harvestclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := harvestclient.New(context.Background(), nil)
		require.ErrorIs(t, err, harvest.ErrConfigRequired)
	})

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()

		_, err := harvestclient.New(context.Background(), &harvest.Config{})
		require.ErrorIs(t, err, harvest.ErrURLRequired)
	})

	t.Run("password required with username", func(t *testing.T) {
		t.Parallel()

		_, err := harvestclient.New(context.Background(), &harvest.Config{
			URL:      "https://harvest.example.org/api/",
			Username: "user",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("does not modify the config", func(t *testing.T) {
		t.Parallel()

		config := &harvest.Config{URL: "harvest.example.org/api/"}

		_, err := harvestclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.Equal(t, "harvest.example.org/api/", config.URL)
	})

	t.Run("discovers on init", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Header().Set("Link", `</api/ping/>; rel="ping"`)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client, err := harvestclient.New(context.Background(), &harvest.Config{
			URL:            server.URL + "/api/",
			DiscoverOnInit: true,
		})
		require.NoError(t, err)
		assert.Equal(t, int32(1), hits.Load())

		relations, err := client.Links(context.Background())
		require.NoError(t, err)
		assert.Equal(t, server.URL+"/api/ping/", relations.Links["ping"])
		assert.Equal(t, int32(1), hits.Load())
	})
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"harvest.example.org/api/", "https://harvest.example.org/api/"},
		{"http://localhost:8000/api/", "http://localhost:8000/api/"},
		{" https://harvest.example.org/api/ ", "https://harvest.example.org/api/"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, harvestclient.NormalizeURL(tt.input))
		})
	}
}

func TestNewWithURL(t *testing.T) {
	t.Parallel()

	client, err := harvestclient.NewWithURL(context.Background(), "https://harvest.example.org/api/")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	client, err := harvestclient.NewWithToken(context.Background(), "https://harvest.example.org/api/", "test-token")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithPassword(t *testing.T) {
	t.Parallel()

	client, err := harvestclient.NewWithPassword(context.Background(), "https://harvest.example.org/api/", "username", "password")
	require.NoError(t, err)
	assert.NotNil(t, client)
	// Authentication is deferred to the first request.
	assert.Empty(t, client.Token())
}
