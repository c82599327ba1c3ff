package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/layerbox/pkg/errors"
	"github.com/matzehuels/layerbox/pkg/graph"
	"github.com/matzehuels/layerbox/pkg/viz"
)

// Plotter collects one builder per graph and writes them as containers.
//
// Plotter implements viz.Plotter.
type Plotter struct {
	opts     Options
	writer   *Writer
	order    []string
	builders map[string]*graph.Builder
	written  []Summary
}

var _ viz.Plotter = (*Plotter)(nil)

// NewPlotter creates a Plotter.
func NewPlotter(opts Options) *Plotter {
	opts = opts.withDefaults()
	return &Plotter{
		opts:     opts,
		writer:   NewWriter(opts),
		builders: make(map[string]*graph.Builder),
	}
}

// CreateGraph returns a new builder for name. Creating the same name again
// discards the earlier builder but keeps the name's original position.
func (p *Plotter) CreateGraph(name string) viz.Graph {
	if _, ok := p.builders[name]; !ok {
		p.order = append(p.order, name)
	}
	b := graph.NewBuilder(name)
	p.builders[name] = b
	return b
}

// Builder returns the current builder for name.
func (p *Plotter) Builder(name string) (*graph.Builder, bool) {
	b, ok := p.builders[name]
	return b, ok
}

// Names returns the graph names in creation order.
func (p *Plotter) Names() []string {
	return append([]string(nil), p.order...)
}

// Render finalizes and writes every graph in creation order, stopping at the
// first error. It returns the paths written before any failure.
func (p *Plotter) Render(dest string) ([]string, error) {
	p.written = p.written[:0]
	paths := make([]string, 0, len(p.order))
	for _, name := range p.order {
		path, err := p.Destination(name, dest)
		if err != nil {
			return paths, err
		}
		layers, err := p.builders[name].Layers()
		if err != nil {
			return paths, fmt.Errorf("graph %s: %w", name, err)
		}
		sum, err := p.writer.Write(name, layers, path)
		if err != nil {
			return paths, fmt.Errorf("graph %s: %w", name, err)
		}
		p.written = append(p.written, sum)
		paths = append(paths, path)
	}
	return paths, nil
}

// Summaries returns the containers written by the last Render.
func (p *Plotter) Summaries() []Summary {
	return append([]Summary(nil), p.written...)
}

// Destination returns the container path for graph name under dest. The
// name is validated only when it becomes part of the file name.
func (p *Plotter) Destination(name, dest string) (string, error) {
	if dest == "" {
		if err := errors.ValidateGraphName(name); err != nil {
			return "", err
		}
		return filepath.Join(p.opts.OutputDir, name+Extension), nil
	}
	if err := errors.ValidateOutputPath(dest); err != nil {
		return "", err
	}
	dest = strings.TrimSuffix(dest, Extension)
	if len(p.order) > 1 {
		if err := errors.ValidateGraphName(name); err != nil {
			return "", err
		}
		return dest + "_" + name + Extension, nil
	}
	return dest + Extension, nil
}
