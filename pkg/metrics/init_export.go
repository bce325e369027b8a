package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initExportMetrics() {
	r.ExportsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraudnet_exports_total",
			Help: "Adapter exports by target format and outcome",
		},
		[]string{"format", "status"},
	)

	r.ExportDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fraudnet_export_duration_seconds",
			Help:    "Time spent materialising an export",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"format"},
	)

	r.ExportEdges = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fraudnet_export_edges",
			Help:    "Edges written into each export",
			Buckets: prometheus.ExponentialBuckets(10, 10, 7),
		},
		[]string{"format"},
	)
}
