// Package viz defines the event contracts between a graph traversal engine
// and the layerbox exporters.
//
// # Overview
//
// A traversal engine walks a computation graph and reports what it sees as a
// stream of events: one [Node] per visited operator or variable, one [Edge]
// per data dependency. The engine decides the visitation order; consumers
// must not assume nodes arrive before the edges that reference them.
//
// Events are delivered to a [Graph], which a [Plotter] creates per named
// graph. Once traversal completes, the driver asks the plotter to render
// every graph it created.
//
// # Decoding
//
// Engines that cannot call a [Graph] directly emit [Event] records instead.
// A [Parser] decodes those records into Node and Edge calls. [DefaultParser]
// is the standard decoder; callers may supply their own to filter or rewrite
// events before they reach the graph.
//
//	p := export.NewPlotter(export.Options{})
//	g := p.CreateGraph("main")
//	for _, ev := range events {
//	    if err := viz.DefaultParser{}.Parse(ev, g); err != nil {
//	        return err
//	    }
//	}
//	files, err := p.Render("")
package viz

import (
	"errors"
	"fmt"
)

// ErrInvalidEvent is returned when an event carries neither or both of a
// node and an edge.
var ErrInvalidEvent = errors.New("event must contain exactly one of node or edge")

// Node is a visited graph node as reported by the traversal engine.
type Node struct {
	// Identity is an opaque key, unique for the lifetime of one traversal.
	Identity string `json:"identity" yaml:"identity"`
	// TypeName is the operator or variable kind (e.g. "Var", "nn.dense").
	TypeName string `json:"type_name" yaml:"type_name"`
	// Detail holds newline-separated key:value parameters. Empty means none.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Edge is a data dependency: the output of Start feeds End.
type Edge struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Event is one recorded visitation. Exactly one field is set.
type Event struct {
	Node *Node `json:"node,omitempty" yaml:"node,omitempty"`
	Edge *Edge `json:"edge,omitempty" yaml:"edge,omitempty"`
}

// Validate reports whether exactly one of Node or Edge is set.
func (e Event) Validate() error {
	if (e.Node == nil) == (e.Edge == nil) {
		return ErrInvalidEvent
	}
	return nil
}

// Graph receives visitation events for one named graph.
// Implementations are not required to be safe for concurrent use.
type Graph interface {
	Node(n Node) error
	Edge(e Edge) error
}

// Plotter creates one Graph per name and renders them once traversal ends.
type Plotter interface {
	// CreateGraph returns a fresh, independent Graph for name.
	CreateGraph(name string) Graph
	// Render writes every created graph and returns the written paths.
	// An empty dest selects a default destination per graph.
	Render(dest string) ([]string, error)
}

// Parser decodes recorded events into Graph calls.
type Parser interface {
	Parse(ev Event, g Graph) error
}

// DefaultParser forwards node and edge events unchanged.
type DefaultParser struct{}

// Parse dispatches ev to g.Node or g.Edge.
func (DefaultParser) Parse(ev Event, g Graph) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	if ev.Node != nil {
		if err := g.Node(*ev.Node); err != nil {
			return fmt.Errorf("node %s: %w", ev.Node.Identity, err)
		}
		return nil
	}
	if err := g.Edge(*ev.Edge); err != nil {
		return fmt.Errorf("edge %s->%s: %w", ev.Edge.Start, ev.Edge.End, err)
	}
	return nil
}
