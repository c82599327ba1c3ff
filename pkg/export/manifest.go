package export

import (
	"encoding/json"

	"github.com/matzehuels/layerbox/pkg/graph"
)

// Manifest values fixed for every container.
const (
	ManifestClassName = "Model"
	ManifestModelName = "model"
)

// Manifest is the document stored as model_config.
type Manifest struct {
	ClassName string      `json:"class_name"`
	Config    ModelConfig `json:"config"`
}

// ModelConfig holds the layer list of a [Manifest].
type ModelConfig struct {
	Name   string        `json:"name"`
	Layers []graph.Layer `json:"layers"`
}

// NewManifest wraps layers in the fixed model envelope.
func NewManifest(layers []graph.Layer) Manifest {
	if layers == nil {
		layers = []graph.Layer{}
	}
	return Manifest{
		ClassName: ManifestClassName,
		Config:    ModelConfig{Name: ManifestModelName, Layers: layers},
	}
}

// Encode renders the manifest as compact JSON.
func (m Manifest) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeManifest parses a model_config document.
func DecodeManifest(data []byte) (Manifest, error) {
	var m Manifest
	err := json.Unmarshal(data, &m)
	return m, err
}
