package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layerbox/pkg/export"
	lbio "github.com/matzehuels/layerbox/pkg/io"
	"github.com/matzehuels/layerbox/pkg/observability"
)

// Runner executes the export pipeline.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete import → build → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	opts.Logger.Debug("pipeline options", "options", opts.String())

	result := &Result{}

	// Stage 1: Import
	importStart := time.Now()
	doc, err := r.Import(ctx, opts.Input, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	result.Stats.ImportTime = time.Since(importStart)
	result.Stats.GraphCount = len(doc.Graphs)
	result.Stats.EventCount = doc.EventCount()

	r.Logger.Info("imported events",
		"graphs", result.Stats.GraphCount,
		"events", result.Stats.EventCount,
		"duration", result.Stats.ImportTime)

	// Stage 2: Build
	buildStart := time.Now()
	plotter, err := r.Build(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Stats.BuildTime = time.Since(buildStart)

	// Stage 3: Render
	renderStart := time.Now()
	files, err := r.Render(ctx, plotter, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Files = files
	result.Stats.RenderTime = time.Since(renderStart)
	result.Graphs = graphStats(plotter)

	r.Logger.Info("wrote containers",
		"files", len(files),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Import reads the event document at path. An empty format is inferred from
// the file extension.
func (r *Runner) Import(ctx context.Context, path string, format lbio.Format) (doc *lbio.Document, err error) {
	start := time.Now()
	observability.Pipeline().OnImportStart(ctx, path)
	defer func() {
		n := 0
		if doc != nil {
			n = len(doc.Graphs)
		}
		observability.Pipeline().OnImportComplete(ctx, path, n, time.Since(start), err)
	}()
	return lbio.ImportEventsAs(path, format)
}

// Build replays every graph of doc into a new export plotter. The context is
// checked before each graph.
func (r *Runner) Build(ctx context.Context, doc *lbio.Document, opts Options) (*export.Plotter, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	plotter := export.NewPlotter(opts.ExportOptions())
	for _, ge := range doc.Graphs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.replay(ctx, plotter, ge, opts); err != nil {
			return nil, err
		}
	}
	return plotter, nil
}

func (r *Runner) replay(ctx context.Context, plotter *export.Plotter, ge lbio.GraphEvents, opts Options) (err error) {
	start := time.Now()
	observability.Pipeline().OnBuildStart(ctx, ge.Name)

	g := plotter.CreateGraph(ge.Name)
	b, _ := plotter.Builder(ge.Name)
	defer func() {
		observability.Pipeline().OnBuildComplete(ctx, ge.Name, b.NodeCount(), b.EdgeCount(), time.Since(start), err)
	}()

	for i, ev := range ge.Events {
		if err := opts.Parser.Parse(ev, g); err != nil {
			return fmt.Errorf("graph %s: event %d: %w", ge.Name, i, err)
		}
	}

	opts.Logger.Debug("built graph",
		"graph", ge.Name,
		"nodes", b.NodeCount(),
		"edges", b.EdgeCount(),
		"duration", time.Since(start))
	return nil
}

// Render writes one container per graph held by plotter.
func (r *Runner) Render(ctx context.Context, plotter *export.Plotter, opts Options) (files []string, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := len(plotter.Names())
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, n)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, n, time.Since(start), err)
	}()
	return plotter.Render(opts.Output)
}

// graphStats joins builder counts with the written container summaries.
func graphStats(plotter *export.Plotter) []GraphStats {
	sums := plotter.Summaries()
	stats := make([]GraphStats, 0, len(sums))
	for _, s := range sums {
		gs := GraphStats{Name: s.Graph, Path: s.Path, Layers: s.Layers, Chunks: s.Chunks}
		if b, ok := plotter.Builder(s.Graph); ok {
			gs.Nodes = b.NodeCount()
			gs.Edges = b.EdgeCount()
		}
		stats = append(stats, gs)
	}
	return stats
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
