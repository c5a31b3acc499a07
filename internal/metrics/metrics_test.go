package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest(http.MethodGet, "/events/:id", http.StatusOK, 10*time.Millisecond)
	c.RecordRequest(http.MethodGet, "/events/:id", http.StatusOK, 20*time.Millisecond)
	c.RecordRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)
	c.RecordAuthFailure("expired")
	c.RecordReservation(true)
	c.RecordReservation(false)
	c.RecordReservation(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "/events/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.authFailures.WithLabelValues("expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.reservations.WithLabelValues("created")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.reservations.WithLabelValues("existing")))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.RecordRequest(http.MethodGet, "/", http.StatusOK, time.Second)
		c.RecordAuthFailure("invalid")
		c.RecordReservation(true)
	})
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordAuthFailure("missing")

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "brightevents_auth_failures_total")
}
