package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDatasetMetrics() {
	r.LoadRowsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraudnet_load_rows_total",
			Help: "Rows read from each input table",
		},
		[]string{"table"},
	)

	r.LoadDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fraudnet_load_duration_seconds",
			Help:    "Time spent reading and parsing each input table",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"table"},
	)

	r.LoadErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraudnet_load_errors_total",
			Help: "Failed loads by stage",
		},
		[]string{"stage"},
	)

	r.DatasetNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "fraudnet_nodes_total",
			Help: "Transactions in the loaded network",
		},
	)

	r.DatasetEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "fraudnet_edges_total",
			Help: "Remapped edges in the loaded network (doubled when undirected)",
		},
	)

	r.DatasetSplitNodes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fraudnet_split_nodes",
			Help: "Nodes selected by each split mask",
		},
		[]string{"split"},
	)

	r.DatasetClassNodes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fraudnet_class_nodes",
			Help: "Nodes per canonical class",
		},
		[]string{"class"},
	)

	r.DatasetFeatureWidth = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "fraudnet_feature_columns",
			Help: "Numeric feature columns after harmonisation",
		},
	)
}
