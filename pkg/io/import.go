package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/layerbox/pkg/errors"
	"github.com/matzehuels/layerbox/pkg/viz"
)

// Document is a recorded traversal of one or more graphs.
type Document struct {
	Graphs []GraphEvents `json:"graphs" yaml:"graphs"`
}

// GraphEvents holds the events recorded for one named graph.
type GraphEvents struct {
	Name   string      `json:"name" yaml:"name"`
	Events []viz.Event `json:"events" yaml:"events"`
}

// EventCount returns the number of events across all graphs.
func (d *Document) EventCount() int {
	n := 0
	for _, g := range d.Graphs {
		n += len(g.Events)
	}
	return n
}

// Validate checks that every graph is named and every event is well formed.
func (d *Document) Validate() error {
	for i, g := range d.Graphs {
		if g.Name == "" {
			return errors.New(errors.ErrCodeInvalidFormat, "graph %d: missing name", i)
		}
		for j, ev := range g.Events {
			if err := ev.Validate(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidFormat, err, "graph %s: event %d", g.Name, j)
			}
		}
	}
	return nil
}

// ReadEvents decodes a document from r and validates it.
// ReadEvents does not close r.
func ReadEvents(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported event format %q", format)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ImportEvents reads the event document at path, choosing the format by
// file extension.
func ImportEvents(path string) (*Document, error) {
	return ImportEventsAs(path, "")
}

// ImportEventsAs reads the event document at path in the given format. An
// empty format is inferred from the file extension.
func ImportEventsAs(path string, format Format) (*Document, error) {
	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return nil, err
		}
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadEvents(f, format)
}
