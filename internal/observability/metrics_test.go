package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounters(t *testing.T) {
	c := NewCollector("adkflow")

	c.ClipboardCopies.Inc()
	c.ClipboardCopies.Inc()
	c.ClipboardPastes.Inc()
	c.ProjectSaves.WithLabelValues("ok").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ClipboardCopies))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ClipboardPastes))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ProjectSaves.WithLabelValues("ok")))
}

func TestIndependentRegistries(t *testing.T) {
	// Two collectors must not collide on registration.
	a := NewCollector("adkflow")
	b := NewCollector("adkflow")
	a.ClipboardCopies.Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ClipboardCopies))
}

func TestMiddlewareRecordsRequests(t *testing.T) {
	c := NewCollector("adkflow")

	h := c.Middleware("/projects")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/projects", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("POST", "/projects", "201")))
}

func TestMetricsHandlerServes(t *testing.T) {
	c := NewCollector("adkflow")
	c.ClipboardCopies.Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "adkflow_clipboard_copies_total")
}
