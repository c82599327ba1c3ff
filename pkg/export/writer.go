package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layerbox/pkg/container"
	"github.com/matzehuels/layerbox/pkg/graph"
	"github.com/matzehuels/layerbox/pkg/observability"
)

// Summary describes one written container.
type Summary struct {
	Graph  string
	Path   string
	Layers int
	Chunks int // layer_names partitions
}

// Writer serializes finalized layers into a container file.
type Writer struct {
	opts Options
}

// NewWriter creates a Writer.
func NewWriter(opts Options) *Writer {
	return &Writer{opts: opts.withDefaults()}
}

// Write creates the container at path and stores the manifest, the framework
// identity, and the layer names. The container is closed on every return
// path, so a failed write leaves whatever was stored before the failure.
func (w *Writer) Write(graphName string, layers []graph.Layer, path string) (sum Summary, err error) {
	start := time.Now()
	sum = Summary{Graph: graphName, Path: path, Layers: len(layers)}
	defer func() {
		observability.Export().OnContainerWritten(graphName, sum.Layers, sum.Chunks, time.Since(start), err)
	}()

	config, err := NewManifest(layers).Encode()
	if err != nil {
		return sum, fmt.Errorf("encode model config: %w", err)
	}

	f, err := container.Create(path, container.WithLimit(w.opts.Limit))
	if err != nil {
		return sum, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	g, err := f.CreateGroup(GroupName)
	if err != nil {
		return sum, err
	}
	if err := g.SetScalar(AttrBackend, []byte(w.opts.Backend)); err != nil {
		return sum, err
	}
	if err := g.SetScalar(AttrVersion, []byte(w.opts.Version)); err != nil {
		return sum, err
	}
	if err := f.Root().SetScalar(AttrModelConfig, config); err != nil {
		return sum, err
	}

	names := make([][]byte, len(layers))
	for i, l := range layers {
		names[i] = []byte(l.Name)
	}
	chunks, err := container.StoreAttribute(g, AttrLayerNames, names)
	if err != nil {
		var oe *container.OversizedElementError
		if errors.As(err, &oe) {
			observability.Export().OnOversizedElements(graphName, len(oe.Elements))
		}
		return sum, fmt.Errorf("store %s: %w", AttrLayerNames, err)
	}
	sum.Chunks = chunks

	w.logger().Debug("wrote container", "graph", graphName, "path", path,
		"layers", len(layers), "chunks", chunks)
	return sum, nil
}

func (w *Writer) logger() *log.Logger { return w.opts.Logger }
