// Package metrics records run statistics in a Prometheus registry and exports
// them in the node-exporter textfile format.
package metrics

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	m "killmap.dev/pkg/killmap/internal/model"
)

const (
	// MetricsNamespace prefixes every metric name.
	MetricsNamespace = "killmap"

	// SourceRun labels outcomes produced by a worker.
	SourceRun = "run"
	// SourceCache labels outcomes replayed from a previous result log.
	SourceCache = "cache"
)

// Metrics holds the collectors of one killmap run. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	outcomesTotal *prometheus.CounterVec
	workerSpawns  prometheus.Counter
	workerCrashes prometheus.Counter
	runDuration   prometheus.Histogram
}

// New creates a Metrics backed by its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		outcomesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "outcomes_total",
			Help:      "Count of recorded outcomes",
		}, []string{
			"type",
			"source",
		}),
		workerSpawns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "worker_spawns_total",
			Help:      "Number of worker processes started",
		}),
		workerCrashes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "worker_crashes_total",
			Help:      "Number of work orders answered with a synthesized crash",
		}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of work orders sent to a worker",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
	}
}

// RecordOutcome counts one outcome by type and source.
func (mx *Metrics) RecordOutcome(outcomeType m.OutcomeType, source string) {
	if mx == nil {
		return
	}

	mx.outcomesTotal.WithLabelValues(string(outcomeType), source).Inc()
}

// RecordWorkerSpawn counts a started worker.
func (mx *Metrics) RecordWorkerSpawn() {
	if mx == nil {
		return
	}

	mx.workerSpawns.Inc()
}

// RecordWorkerCrash counts a worker discarded after a crash or hang.
func (mx *Metrics) RecordWorkerCrash() {
	if mx == nil {
		return
	}

	mx.workerCrashes.Inc()
}

// ObserveRun records the round-trip time of one work order.
func (mx *Metrics) ObserveRun(d time.Duration) {
	if mx == nil {
		return
	}

	mx.runDuration.Observe(d.Seconds())
}

// Registry exposes the underlying registry.
func (mx *Metrics) Registry() *prometheus.Registry {
	if mx == nil {
		return nil
	}

	return mx.registry
}

// WriteTextfile writes every metric to path. An empty path is a no-op.
func (mx *Metrics) WriteTextfile(path string) error {
	if mx == nil || path == "" {
		return nil
	}

	if err := prometheus.WriteToTextfile(path, mx.registry); err != nil {
		slog.Error("Failed to write metrics", "path", path, "error", err)
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}

	return nil
}
