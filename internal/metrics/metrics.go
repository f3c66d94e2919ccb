// Package metrics exposes the counters of a deduplication run in Prometheus
// form. Runs are batch jobs, so the registry is written to a textfile for the
// node_exporter textfile collector rather than served over HTTP.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/davidvella/tnsdedup/dedup"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tnsdedup"

// Metrics holds the collectors for one run.
type Metrics struct {
	registry *prometheus.Registry

	RecordsSeen    prometheus.Counter
	RecordsPruned  prometheus.Counter
	RecordsWritten prometheus.Counter
	ModeExtent     *prometheus.GaugeVec
	Shards         prometheus.Gauge
	Duration       prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return &Metrics{
		registry: reg,
		RecordsSeen: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_seen_total",
			Help:      "Records compared against their predecessor",
		}),
		RecordsPruned: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_pruned_total",
			Help:      "Records merged into their predecessor",
		}),
		RecordsWritten: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_written_total",
			Help:      "Records written to the output",
		}),
		ModeExtent: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mode_extent",
			Help:      "Largest coordinate written, per mode",
		}, []string{"mode"}),
		Shards: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "input_shards",
			Help:      "Number of input files merged",
		}),
		Duration: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the run",
		}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records the outcome of a pass. Modes are numbered from 1.
func (m *Metrics) Observe(stats dedup.Stats) {
	m.RecordsSeen.Add(float64(stats.Seen))
	m.RecordsPruned.Add(float64(stats.Pruned))
	m.RecordsWritten.Add(float64(stats.Written))
	for mode, extent := range stats.Extent {
		m.ModeExtent.WithLabelValues(strconv.Itoa(mode + 1)).Set(float64(extent))
	}
}

// WriteTextfile writes the registry to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: failed to write %s: %w", path, err)
	}
	return nil
}
