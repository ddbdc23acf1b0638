package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// histogramFor returns the histogram sample of vec matching labels.
func histogramFor(t *testing.T, vec *prometheus.HistogramVec, labels ...string) *dto.Histogram {
	t.Helper()
	observer, err := vec.GetMetricWithLabelValues(labels...)
	require.NoError(t, err)

	var m dto.Metric
	require.NoError(t, observer.(prometheus.Metric).Write(&m))
	return m.GetHistogram()
}

func meteredRouter(service string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics(service))
	r.Get("/api/v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "ghost" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(strings.Repeat("x", 300)))
	})
	r.Get("/api/v1/products/export", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.WriteHeader(http.StatusInternalServerError)
	})
	return r
}

func TestPrometheusMetrics_LabelsByRoutePattern(t *testing.T) {
	const service = "metrics-route"
	r := meteredRouter(service)

	for _, id := range []string{"p1", "p2", "ghost"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id, nil))
	}

	ok := httpRequestsTotal.WithLabelValues(service, http.MethodGet, "/api/v1/products/{id}", "200")
	missing := httpRequestsTotal.WithLabelValues(service, http.MethodGet, "/api/v1/products/{id}", "404")
	assert.Equal(t, 2.0, testutil.ToFloat64(ok))
	assert.Equal(t, 1.0, testutil.ToFloat64(missing))

	latency := histogramFor(t, httpRequestDuration, service, http.MethodGet, "/api/v1/products/{id}")
	assert.Equal(t, uint64(3), latency.GetSampleCount())
}

func TestPrometheusMetrics_ResponseSize(t *testing.T) {
	const service = "metrics-size"
	r := meteredRouter(service)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/products/p1", nil))

	size := histogramFor(t, httpResponseSize, service, "/api/v1/products/{id}")
	assert.Equal(t, uint64(1), size.GetSampleCount())
	assert.Equal(t, 300.0, size.GetSampleSum())
}

func TestPrometheusMetrics_FirstStatusWins(t *testing.T) {
	const service = "metrics-status"
	r := meteredRouter(service)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/products/export", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(
		httpRequestsTotal.WithLabelValues(service, http.MethodGet, "/api/v1/products/export", "201")))
}

func TestPrometheusMetrics_UnmatchedRoute(t *testing.T) {
	const service = "metrics-unmatched"
	r := meteredRouter(service)

	for _, path := range []string{"/wp-admin", "/.env"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(
		httpRequestsTotal.WithLabelValues(service, http.MethodGet, unmatchedRoute, "404")))
}

func TestPrometheusMetrics_InFlightReturnsToZero(t *testing.T) {
	const service = "metrics-inflight"
	gauge := httpRequestsInFlight.WithLabelValues(service)

	var during float64
	r := chi.NewRouter()
	r.Use(PrometheusMetrics(service))
	r.Get("/api/v1/dashboard", func(w http.ResponseWriter, _ *http.Request) {
		during = testutil.ToFloat64(gauge)
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	assert.Equal(t, 1.0, during)
	assert.Equal(t, 0.0, testutil.ToFloat64(gauge))
}
