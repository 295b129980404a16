// Package metrics holds the domain Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Import failure reasons.
const (
	ReasonTooLarge    = "too_large"
	ReasonUnsupported = "unsupported_format"
	ReasonInvalidCSV  = "invalid_csv"
	ReasonStorage     = "storage"
	ReasonDatabase    = "database"
)

// Import counts CSV import outcomes.
type Import struct {
	Imported prometheus.Counter
	Failed   *prometheus.CounterVec
}

// NewImport registers the import collectors on reg.
func NewImport(reg prometheus.Registerer) (*Import, error) {
	m := &Import{
		Imported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leads_imported_total",
			Help: "Leads stored through CSV imports.",
		}),
		Failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lead_imports_failed_total",
			Help: "CSV imports that stored no leads, by reason.",
		}, []string{"reason"}),
	}
	for _, c := range []prometheus.Collector{m.Imported, m.Failed} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Fail counts one failed import.
func (m *Import) Fail(reason string) {
	m.Failed.WithLabelValues(reason).Inc()
}
