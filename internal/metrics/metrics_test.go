package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.DatasetLoaded("fallback")
	m.DatasetLoaded("fallback")
	m.Predicted("XGBoost", "disease")
	m.Exported("csv")
	m.SetSessions(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.loads.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.predictions.WithLabelValues("XGBoost", "disease")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues("csv")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.sessions))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.DatasetLoaded("remote")
		m.Predicted("Logistic", "healthy")
		m.Exported("json")
		m.SetSessions(1)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.Exported("xlsx")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `heartbi_exports_total{format="xlsx"} 1`)
}
