package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Middleware(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	m := New(Config{Registry: registry})

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	for _, target := range []string{"/ok", "/ok", "/missing"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	}

	okCount := testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "200"))
	require.Equal(t, float64(2), okCount)

	missCount := testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "404"))
	require.Equal(t, float64(1), missCount)

	count, err := testutil.GatherAndCount(registry,
		"gateway_http_requests_total", "gateway_http_request_duration_seconds")
	require.NoError(t, err)
	require.Positive(t, count)
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	m := New(Config{Namespace: "test_defaults", Registry: prometheus.NewRegistry()})
	require.NotNil(t, m.requestsTotal)
	require.NotNil(t, m.requestDuration)
}
