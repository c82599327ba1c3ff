// Package pipeline provides the export pipeline for layerbox.
//
// This package implements the complete import → build → render pipeline used
// by the CLI. By centralizing this logic, every entry point applies the same
// defaults and reports the same statistics.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Import: Read an event document (JSON or YAML)
//  2. Build: Replay each graph's events into a graph builder
//  3. Render: Finalize every builder and write one container per graph
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Input:     "events.json",
//	    OutputDir: "out",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Files)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layerbox/pkg/container"
	"github.com/matzehuels/layerbox/pkg/errors"
	"github.com/matzehuels/layerbox/pkg/export"
	lbio "github.com/matzehuels/layerbox/pkg/io"
	"github.com/matzehuels/layerbox/pkg/viz"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultBackend is the framework identity stored in each container.
	DefaultBackend = export.DefaultBackend

	// DefaultVersion is the framework version stored in each container.
	DefaultVersion = export.DefaultVersion

	// DefaultLimit is the per-object limit for chunked attributes.
	DefaultLimit = container.ObjectHeaderLimit
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the export pipeline.
type Options struct {
	Input     string      `json:"input"`                // Event document path
	Format    lbio.Format `json:"format,omitempty"`     // Input encoding; empty infers it from the extension
	Output    string      `json:"output,omitempty"`     // Explicit destination, see export.Plotter.Render
	OutputDir string      `json:"output_dir,omitempty"` // Directory for default destinations
	Backend   string      `json:"backend,omitempty"`
	Version   string      `json:"version,omitempty"`
	Limit     int         `json:"limit,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	Parser viz.Parser  `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Files lists the written containers in graph order.
	Files []string

	// Graphs holds per-graph statistics in graph order.
	Graphs []GraphStats

	// Stats contains timing and size information.
	Stats Stats
}

// GraphStats describes one exported graph.
type GraphStats struct {
	Name   string
	Path   string
	Nodes  int
	Edges  int
	Layers int
	Chunks int // layer_names partitions
}

// Stats contains pipeline execution statistics.
type Stats struct {
	GraphCount int
	EventCount int
	ImportTime time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if o.Output != "" {
		if err := errors.ValidateOutputPath(o.Output); err != nil {
			return err
		}
	}
	if o.Format != "" {
		format, err := lbio.ParseFormat(string(o.Format))
		if err != nil {
			return err
		}
		o.Format = format
	}
	if o.Limit < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "limit must not be negative, got %d", o.Limit)
	}

	if o.Backend == "" {
		o.Backend = DefaultBackend
	}
	if o.Version == "" {
		o.Version = DefaultVersion
	}
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	if o.Parser == nil {
		o.Parser = viz.DefaultParser{}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// ExportOptions returns the options for the export plotter.
func (o *Options) ExportOptions() export.Options {
	return export.Options{
		Backend:   o.Backend,
		Version:   o.Version,
		Limit:     o.Limit,
		OutputDir: o.OutputDir,
		Logger:    o.Logger,
	}
}

// String summarizes the options for logging.
func (o *Options) String() string {
	return fmt.Sprintf("input=%s format=%q output=%q output_dir=%q backend=%s version=%s limit=%d",
		o.Input, o.Format, o.Output, o.OutputDir, o.Backend, o.Version, o.Limit)
}
