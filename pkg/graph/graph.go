package graph

import (
	"strings"

	"github.com/matzehuels/layerbox/pkg/viz"
)

// Builder accumulates visitation events for one graph and produces its
// layer list. The zero value is not usable; use [NewBuilder].
//
// Builder implements viz.Graph.
type Builder struct {
	name     string
	order    []string            // adjacency keys in first-seen order
	inbound  map[string][]string // identity -> predecessor identities
	nodes    map[string]*Node    // identity -> latest recorded node
	edgeSeen int
}

var _ viz.Graph = (*Builder)(nil)

// NewBuilder creates an empty builder for the named graph.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:    name,
		inbound: make(map[string][]string),
		nodes:   make(map[string]*Node),
	}
}

// Name returns the graph name the builder was created for.
func (b *Builder) Name() string { return b.name }

// NodeCount returns the number of distinct recorded node identities.
func (b *Builder) NodeCount() int { return len(b.nodes) }

// EdgeCount returns the number of recorded edge events.
func (b *Builder) EdgeCount() int { return b.edgeSeen }

// Node records a visited node. Re-recording an identity replaces the earlier
// record. A malformed detail string leaves the builder unchanged.
func (b *Builder) Node(v viz.Node) error {
	n, err := NewNode(v)
	if err != nil {
		return err
	}
	b.ensure(v.Identity)
	b.nodes[v.Identity] = n
	return nil
}

// Edge records that the output of e.Start feeds e.End.
// It never fails; the error result satisfies viz.Graph.
func (b *Builder) Edge(e viz.Edge) error {
	b.ensure(e.End)
	b.inbound[e.End] = append(b.inbound[e.End], e.Start)
	b.edgeSeen++
	return nil
}

// ensure creates an empty adjacency entry for id if none exists.
func (b *Builder) ensure(id string) {
	if _, ok := b.inbound[id]; ok {
		return
	}
	b.inbound[id] = nil
	b.order = append(b.order, id)
}

// Layers finalizes the model into one Layer per adjacency key, in first-seen
// order. It returns a [MissingLayerError] if any referenced identity has no
// recorded node. The builder is not modified.
func (b *Builder) Layers() ([]Layer, error) {
	layers := make([]Layer, 0, len(b.order))
	for _, id := range b.order {
		layer, err := b.layer(id)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

func (b *Builder) layer(id string) (Layer, error) {
	n, ok := b.nodes[id]
	if !ok {
		return Layer{}, &MissingLayerError{Identity: id}
	}

	preds := b.inbound[id]
	inbound := make([]InboundNode, 0, len(preds))
	dtypeHint := ""
	for _, pid := range preds {
		pred, ok := b.nodes[pid]
		if !ok {
			return Layer{}, &MissingLayerError{Identity: pid}
		}
		inbound = append(inbound, InboundNode{Name: pred.Name, Attributes: map[string]string{}})
		if dt, ok := pred.Params[ParamDType]; ok {
			dtypeHint = dt
		}
	}

	return Layer{
		Name:         n.Name,
		ClassName:    n.Type,
		InboundNodes: inbound,
		Config:       layerConfig(n, dtypeHint),
	}, nil
}

// layerConfig derives the flat configuration map for n, visiting parameters
// in detail order so later keys win deterministically.
func layerConfig(n *Node, dtypeHint string) map[string]string {
	cfg := make(map[string]string, len(n.Params)+1)
	if hint, ok := n.Params[ParamNameHint]; ok {
		cfg[ConfigName] = hint
	} else {
		cfg[ConfigName] = n.Name
	}

	for _, k := range n.keys {
		v := n.Params[k]
		if strings.Contains(k, ParamOutDType) && v == inheritDTypeMarker {
			cfg[ConfigDType] = dtypeHint
			continue
		}
		if k == ParamNameHint || v == "" {
			continue
		}
		cfg[k] = v
	}
	return cfg
}
