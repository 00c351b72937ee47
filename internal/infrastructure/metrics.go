package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters recorded during an extraction run. Each run
// owns its registry so tests and embedded callers do not share state.
type Metrics struct {
	Registry *prometheus.Registry

	RowsProcessed  *prometheus.CounterVec
	RowsDropped    *prometheus.CounterVec
	EntriesEmitted *prometheus.CounterVec
	IssuesFlagged  *prometheus.CounterVec
	Applicants     prometheus.Counter
}

// NewMetrics creates and registers the run counters.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RowsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gradecli",
			Name:      "rows_processed_total",
			Help:      "Raw table rows inspected, by table kind.",
		}, []string{"kind"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gradecli",
			Name:      "rows_dropped_total",
			Help:      "Raw table rows that produced no entry, by table kind and reason.",
		}, []string{"kind", "reason"}),
		EntriesEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gradecli",
			Name:      "entries_emitted_total",
			Help:      "Grade entries produced, by table kind.",
		}, []string{"kind"}),
		IssuesFlagged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gradecli",
			Name:      "issues_flagged_total",
			Help:      "Data-quality issues detected, by issue.",
		}, []string{"issue"}),
		Applicants: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gradecli",
			Name:      "applicants_processed_total",
			Help:      "Applicants whose records were extracted.",
		}),
	}

	m.Registry.MustRegister(m.RowsProcessed, m.RowsDropped, m.EntriesEmitted, m.IssuesFlagged, m.Applicants)
	return m
}

// WriteTextfile writes the current values in the node exporter textfile
// format. An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
