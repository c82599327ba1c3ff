// Package metrics implements the observability hooks with Prometheus
// collectors.
//
// A Registry owns a private prometheus.Registry, so several instances can
// coexist in tests. The CLI registers one at startup and, when asked, writes
// it in the node-exporter textfile format after the run:
//
//	m := metrics.New()
//	observability.SetPipelineHooks(m)
//	observability.SetExportHooks(m)
//	// ... run pipeline ...
//	err := m.WriteTextfile("layerbox.prom")
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/layerbox/pkg/observability"
)

const namespace = "layerbox"

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0}

// Registry holds all metrics for one process.
type Registry struct {
	// Pipeline metrics
	StageDuration *prometheus.HistogramVec
	StageErrors   *prometheus.CounterVec
	GraphsTotal   prometheus.Counter
	NodesTotal    prometheus.Counter
	EdgesTotal    prometheus.Counter

	// Export metrics
	ContainersTotal   *prometheus.CounterVec
	LayersTotal       prometheus.Counter
	ChunksPerGraph    prometheus.Histogram
	OversizedElements prometheus.Counter

	registry *prometheus.Registry
}

var (
	_ observability.PipelineHooks = (*Registry)(nil)
	_ observability.ExportHooks   = (*Registry)(nil)
)

// New creates a Registry with all collectors registered.
func New() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	f := promauto.With(r.registry)

	r.StageDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds",
			Buckets:   durationBuckets,
		},
		[]string{"stage"},
	)
	r.StageErrors = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_errors_total",
			Help:      "Total number of failed pipeline stages",
		},
		[]string{"stage"},
	)
	r.GraphsTotal = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graphs_built_total",
		Help:      "Total number of graphs replayed into builders",
	})
	r.NodesTotal = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "nodes_total",
		Help:      "Total number of distinct nodes recorded",
	})
	r.EdgesTotal = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "edges_total",
		Help:      "Total number of edges recorded",
	})

	r.ContainersTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "containers_written_total",
			Help:      "Total number of container writes",
		},
		[]string{"status"},
	)
	r.LayersTotal = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "layers_written_total",
		Help:      "Total number of layers written to containers",
	})
	r.ChunksPerGraph = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "layer_name_chunks",
		Help:      "Number of layer_names partitions per container",
		Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
	})
	r.OversizedElements = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oversized_elements_total",
		Help:      "Total number of layer names rejected for exceeding the object limit",
	})

	return r
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.registry }

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}

func (r *Registry) observeStage(stage string, d time.Duration, err error) {
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		r.StageErrors.WithLabelValues(stage).Inc()
	}
}

// =============================================================================
// observability.PipelineHooks
// =============================================================================

func (r *Registry) OnImportStart(context.Context, string) {}

func (r *Registry) OnImportComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	r.observeStage("import", d, err)
}

func (r *Registry) OnBuildStart(context.Context, string) {}

func (r *Registry) OnBuildComplete(_ context.Context, _ string, nodes, edges int, d time.Duration, err error) {
	r.observeStage("build", d, err)
	r.GraphsTotal.Inc()
	r.NodesTotal.Add(float64(nodes))
	r.EdgesTotal.Add(float64(edges))
}

func (r *Registry) OnRenderStart(context.Context, int) {}

func (r *Registry) OnRenderComplete(_ context.Context, _ int, d time.Duration, err error) {
	r.observeStage("render", d, err)
}

// =============================================================================
// observability.ExportHooks
// =============================================================================

func (r *Registry) OnContainerWritten(_ string, layers, chunks int, _ time.Duration, err error) {
	if err != nil {
		r.ContainersTotal.WithLabelValues("error").Inc()
		return
	}
	r.ContainersTotal.WithLabelValues("ok").Inc()
	r.LayersTotal.Add(float64(layers))
	r.ChunksPerGraph.Observe(float64(chunks))
}

func (r *Registry) OnOversizedElements(_ string, count int) {
	r.OversizedElements.Add(float64(count))
}
