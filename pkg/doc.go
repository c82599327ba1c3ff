// Package pkg provides the core libraries for layerbox.
//
// # Overview
//
// layerbox turns the visitation events of a computation-graph traversal into
// one container file per graph. The pkg directory is organized as:
//
//  1. [viz] - Event types and the Graph/Plotter/Parser interfaces
//  2. [graph] - Builder that normalizes events into layers
//  3. [container] - Size-limited container format with attribute chunking
//  4. [export] - Plotter and Writer that produce containers
//  5. [io] - JSON/YAML event documents
//  6. [pipeline] - Orchestration (import → build → render)
//  7. [config], [metrics], [observability], [errors], [buildinfo] - Ambient support
//
// # Architecture
//
//	Event document (JSON/YAML)
//	         ↓
//	    [io] package (decode and validate)
//	         ↓
//	    [viz] Parser → [graph] Builder (one per graph)
//	         ↓
//	    [export] Plotter.Render
//	         ↓
//	    [container] <graph>.lbox
//
// # Quick Start
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Input: "events.json"})
//	if err != nil {
//	    return err
//	}
//	for _, path := range result.Files {
//	    fmt.Println(path)
//	}
//
// [viz]: github.com/matzehuels/layerbox/pkg/viz
// [graph]: github.com/matzehuels/layerbox/pkg/graph
// [container]: github.com/matzehuels/layerbox/pkg/container
// [export]: github.com/matzehuels/layerbox/pkg/export
// [io]: github.com/matzehuels/layerbox/pkg/io
// [pipeline]: github.com/matzehuels/layerbox/pkg/pipeline
// [config]: github.com/matzehuels/layerbox/pkg/config
// [metrics]: github.com/matzehuels/layerbox/pkg/metrics
// [observability]: github.com/matzehuels/layerbox/pkg/observability
// [errors]: github.com/matzehuels/layerbox/pkg/errors
// [buildinfo]: github.com/matzehuels/layerbox/pkg/buildinfo
package pkg
