package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for a loader/adapter process
type Registry struct {
	// Load metrics
	LoadRowsTotal       *prometheus.CounterVec
	LoadDuration        *prometheus.HistogramVec
	LoadErrorsTotal     *prometheus.CounterVec
	DatasetNodesTotal   prometheus.Gauge
	DatasetEdgesTotal   prometheus.Gauge
	DatasetSplitNodes   *prometheus.GaugeVec
	DatasetClassNodes   *prometheus.GaugeVec
	DatasetFeatureWidth prometheus.Gauge

	// Export metrics
	ExportsTotal   *prometheus.CounterVec
	ExportDuration *prometheus.HistogramVec
	ExportEdges    *prometheus.HistogramVec

	registry *prometheus.Registry
	mu       sync.Mutex
}

var (
	defaultRegistry *Registry
	once            sync.Once
)
