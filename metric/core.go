package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the core validation-run metrics every run updates.
type Metrics struct {
	// RecordsTotal counts annotation lines read, by outcome: ok, repaired,
	// skipped, malformed, comment.
	RecordsTotal *prometheus.CounterVec

	// FindingsTotal counts rule findings by rule id and severity.
	FindingsTotal *prometheus.CounterVec

	// RecordDuration observes per-record validation time in seconds.
	RecordDuration prometheus.Histogram

	// RunDuration observes whole-run wall time in seconds.
	RunDuration prometheus.Histogram

	// OntologyTerms reports the node count of the loaded ontology.
	OntologyTerms prometheus.Gauge
}

// Record outcome label values for RecordsTotal.
const (
	OutcomeOK        = "ok"
	OutcomeRepaired  = "repaired"
	OutcomeSkipped   = "skipped"
	OutcomeMalformed = "malformed"
	OutcomeComment   = "comment"
)

// NewMetrics creates the core metric set, unregistered.
func NewMetrics() *Metrics {
	return &Metrics{
		RecordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gafcheck_records_total",
			Help: "Annotation lines read, by outcome",
		}, []string{"outcome"}),
		FindingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gafcheck_findings_total",
			Help: "Rule findings, by rule id and severity",
		}, []string{"rule", "severity"}),
		RecordDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gafcheck_record_duration_seconds",
			Help:    "Per-record validation time",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gafcheck_run_duration_seconds",
			Help:    "Whole-run wall time",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 120, 600},
		}),
		OntologyTerms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gafcheck_ontology_terms",
			Help: "Node count of the loaded ontology graph",
		}),
	}
}
