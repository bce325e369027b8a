package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initDatasetMetrics()
	r.initExportMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordTableLoad records rows read from one input table
func (r *Registry) RecordTableLoad(table string, rows int, duration time.Duration) {
	r.LoadRowsTotal.WithLabelValues(table).Add(float64(rows))
	r.LoadDuration.WithLabelValues(table).Observe(duration.Seconds())
}

// RecordLoadError counts a failed load stage
func (r *Registry) RecordLoadError(stage string) {
	r.LoadErrorsTotal.WithLabelValues(stage).Inc()
}

// SetDatasetShape publishes the size of the constructed network
func (r *Registry) SetDatasetShape(nodes, edges, featureColumns int) {
	r.DatasetNodesTotal.Set(float64(nodes))
	r.DatasetEdgesTotal.Set(float64(edges))
	r.DatasetFeatureWidth.Set(float64(featureColumns))
}

// SetSplitSizes publishes how many nodes each mask selects
func (r *Registry) SetSplitSizes(train, val, test int) {
	r.DatasetSplitNodes.WithLabelValues("train").Set(float64(train))
	r.DatasetSplitNodes.WithLabelValues("val").Set(float64(val))
	r.DatasetSplitNodes.WithLabelValues("test").Set(float64(test))
}

// SetClassSizes publishes the class histogram. Keys are class names.
func (r *Registry) SetClassSizes(counts map[string]int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.DatasetClassNodes.Reset()
	for class, n := range counts {
		r.DatasetClassNodes.WithLabelValues(class).Set(float64(n))
	}
}

// RecordExport records one export call
func (r *Registry) RecordExport(format string, edges int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.ExportsTotal.WithLabelValues(format, status).Inc()
	r.ExportDuration.WithLabelValues(format).Observe(duration.Seconds())
	if err == nil {
		r.ExportEdges.WithLabelValues(format).Observe(float64(edges))
	}
}

// WriteTextfile writes the registry in the node-exporter textfile format.
// Batch runs use it instead of serving /metrics.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
