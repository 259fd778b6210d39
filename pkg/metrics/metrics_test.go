package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
	"github.com/fivetwenty-io/harvest-client/pkg/metrics"
)

var errHandshake = errors.New("handshake failed")

func TestRecorder(t *testing.T) {
	t.Parallel()

	var _ harvest.MetricsRecorder = metrics.New()

	t.Run("requests", func(t *testing.T) {
		t.Parallel()

		recorder := metrics.New()
		recorder.ObserveRequest("GET", 200, 10*time.Millisecond)
		recorder.ObserveRequest("GET", 200, 20*time.Millisecond)
		recorder.ObserveRequest("POST", 0, time.Millisecond)

		count, err := testutil.GatherAndCount(recorder.Registry(), "harvest_client_requests_total")
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		count, err = testutil.GatherAndCount(recorder.Registry(), "harvest_client_request_duration_seconds")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("handshakes and session events", func(t *testing.T) {
		t.Parallel()

		recorder := metrics.New()
		recorder.ObserveHandshake(nil)
		recorder.ObserveHandshake(errHandshake)
		recorder.ObserveHandshake(errHandshake)
		recorder.ObserveSessionEvent(harvest.SessionOpened)

		count, err := testutil.GatherAndCount(recorder.Registry(), "harvest_client_handshakes_total")
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		count, err = testutil.GatherAndCount(recorder.Registry(), "harvest_client_session_events_total")
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		handler := recorder.Handler()
		server := httptest.NewServer(handler)
		defer server.Close()

		resp, err := http.Get(server.URL)
		require.NoError(t, err)

		defer func() {
			_ = resp.Body.Close()
		}()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `harvest_client_handshakes_total{result="failure"} 2`)
		assert.Contains(t, string(body), "harvest_client_session_connected 1")

		recorder.ObserveSessionEvent(harvest.SessionExpired)

		count, err = testutil.GatherAndCount(recorder.Registry(), "harvest_client_session_events_total")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}
