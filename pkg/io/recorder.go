package io

import (
	"github.com/matzehuels/layerbox/pkg/viz"
)

// Recorder is a viz.Plotter that captures events into a Document instead of
// building models. Render writes the document with [ExportEvents].
type Recorder struct {
	doc   Document
	index map[string]int
}

var _ viz.Plotter = (*Recorder)(nil)

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{index: make(map[string]int)}
}

// CreateGraph starts a new event list for name, replacing any earlier list
// of that name in place.
func (r *Recorder) CreateGraph(name string) viz.Graph {
	if i, ok := r.index[name]; ok {
		r.doc.Graphs[i].Events = nil
		return &recordedGraph{r: r, i: i}
	}
	r.index[name] = len(r.doc.Graphs)
	r.doc.Graphs = append(r.doc.Graphs, GraphEvents{Name: name})
	return &recordedGraph{r: r, i: len(r.doc.Graphs) - 1}
}

// Document returns the recorded events.
func (r *Recorder) Document() *Document { return &r.doc }

// Render writes the document to dest and returns it as the only path.
func (r *Recorder) Render(dest string) ([]string, error) {
	if err := ExportEvents(&r.doc, dest); err != nil {
		return nil, err
	}
	return []string{dest}, nil
}

type recordedGraph struct {
	r *Recorder
	i int
}

func (g *recordedGraph) Node(n viz.Node) error {
	g.r.doc.Graphs[g.i].Events = append(g.r.doc.Graphs[g.i].Events, viz.Event{Node: &n})
	return nil
}

func (g *recordedGraph) Edge(e viz.Edge) error {
	g.r.doc.Graphs[g.i].Events = append(g.r.doc.Graphs[g.i].Events, viz.Event{Edge: &e})
	return nil
}
