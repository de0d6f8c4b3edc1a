package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obokit/gafcheck/errors"
)

func TestRegistryCoreMetrics(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r.Metrics)

	r.Metrics.RecordsTotal.WithLabelValues(OutcomeOK).Inc()
	r.Metrics.FindingsTotal.WithLabelValues("gorule-0000020", "warning").Inc()
	r.Metrics.OntologyTerms.Set(42)

	families, err := r.PrometheusRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["gafcheck_records_total"])
	assert.True(t, names["gafcheck_findings_total"])
	assert.True(t, names["gafcheck_ontology_terms"])
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_component_ops_total",
		Help: "test counter",
	})
	require.NoError(t, r.Register("engine", "ops_total", counter))

	err := r.Register("engine", "ops_total", counter)
	require.Error(t, err)
	assert.True(t, errors.IsRecord(err))

	assert.True(t, r.Unregister("engine", "ops_total"))
	assert.False(t, r.Unregister("engine", "ops_total"))
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.Metrics.RecordsTotal.WithLabelValues(OutcomeMalformed).Inc()

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "gafcheck_records_total")
}
