package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/layerbox/pkg/viz"
)

// =============================================================================
// Constants
// =============================================================================

// Parameter keys with special meaning during layer finalization.
const (
	ParamNameHint = "name_hint"
	ParamDType    = "dtype"
	ParamOutDType = "out_dtype"
)

// Configuration keys written by the builder.
const (
	ConfigName  = "name"
	ConfigDType = "dtype"
)

// inheritDTypeMarker is the out_dtype value asking for the predecessor dtype.
const inheritDTypeMarker = " "

// =============================================================================
// Params
// =============================================================================

// Params maps a node's detail keys to their raw values.
type Params map[string]string

// ParseDetail splits a detail string into Params.
// Lines are separated by '\n'; empty lines are ignored. Every other line must
// contain exactly one ':'. Keys and values are kept verbatim.
func ParseDetail(detail string) (Params, error) {
	params, _, err := parseDetail(detail)
	return params, err
}

// parseDetail is ParseDetail that also reports keys in first-occurrence order.
func parseDetail(detail string) (Params, []string, error) {
	params := Params{}
	var keys []string
	if detail == "" {
		return params, keys, nil
	}
	for _, line := range strings.Split(detail, "\n") {
		if line == "" {
			continue
		}
		if strings.Count(line, ":") != 1 {
			return nil, nil, &MalformedDetailError{Line: line}
		}
		k, v, _ := strings.Cut(line, ":")
		if _, dup := params[k]; !dup {
			keys = append(keys, k)
		}
		params[k] = v
	}
	return params, keys, nil
}

// =============================================================================
// Node
// =============================================================================

// Node is the normalized record for one visited graph node.
type Node struct {
	Name   string // TypeName + "_" + Identity, unique within a graph
	Type   string
	Params Params

	keys []string // Params keys in detail order
}

// NewNode builds a Node from a visitation event.
func NewNode(v viz.Node) (*Node, error) {
	params, keys, err := parseDetail(v.Detail)
	if err != nil {
		var mde *MalformedDetailError
		if errors.As(err, &mde) {
			mde.Identity = v.Identity
		}
		return nil, err
	}
	return &Node{
		Name:   LayerName(v.TypeName, v.Identity),
		Type:   v.TypeName,
		Params: params,
		keys:   keys,
	}, nil
}

// LayerName returns the layer name for a node type and identity.
func LayerName(typeName, identity string) string {
	return typeName + "_" + identity
}

// =============================================================================
// Layer
// =============================================================================

// Layer is the serialization-ready record for one node and its inbound edges.
type Layer struct {
	Name         string            `json:"name"`
	ClassName    string            `json:"class_name"`
	InboundNodes []InboundNode     `json:"inbound_nodes"`
	Config       map[string]string `json:"config"`
}

// InboundNode references a predecessor layer.
// It is encoded as the 4-tuple [name, 0, 0, {}]; the two integers and the
// trailing object are placeholders kept for reader compatibility.
type InboundNode struct {
	Name       string
	NodeIndex  int
	TensorIdx  int
	Attributes map[string]string
}

// MarshalJSON encodes the inbound node as a 4-element array.
func (n InboundNode) MarshalJSON() ([]byte, error) {
	attrs := n.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	return json.Marshal([]any{n.Name, n.NodeIndex, n.TensorIdx, attrs})
}

// UnmarshalJSON decodes the 4-element array form.
func (n *InboundNode) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 4 {
		return fmt.Errorf("inbound node: want 4 elements, got %d", len(raw))
	}
	var out InboundNode
	if err := json.Unmarshal(raw[0], &out.Name); err != nil {
		return fmt.Errorf("inbound node name: %w", err)
	}
	if err := json.Unmarshal(raw[1], &out.NodeIndex); err != nil {
		return fmt.Errorf("inbound node index: %w", err)
	}
	if err := json.Unmarshal(raw[2], &out.TensorIdx); err != nil {
		return fmt.Errorf("inbound tensor index: %w", err)
	}
	if err := json.Unmarshal(raw[3], &out.Attributes); err != nil {
		return fmt.Errorf("inbound attributes: %w", err)
	}
	*n = out
	return nil
}
