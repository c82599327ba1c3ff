package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/layerbox/pkg/errors"
	"github.com/matzehuels/layerbox/pkg/viz"
)

const sampleJSON = `{
  "graphs": [
    {
      "name": "main",
      "events": [
        {"node": {"identity": "0", "type_name": "Var", "detail": "name_hint:x\ndtype:float32"}},
        {"node": {"identity": "1", "type_name": "nn.relu"}},
        {"edge": {"start": "0", "end": "1"}}
      ]
    },
    {"name": "f1", "events": []}
  ]
}`

const sampleYAML = `graphs:
  - name: main
    events:
      - node:
          identity: "0"
          type_name: Var
          detail: "name_hint:x\ndtype:float32"
      - node:
          identity: "1"
          type_name: nn.relu
      - edge:
          start: "0"
          end: "1"
  - name: f1
    events: []
`

func checkSample(t *testing.T, doc *Document) {
	t.Helper()
	require.Len(t, doc.Graphs, 2)
	assert.Equal(t, "main", doc.Graphs[0].Name)
	assert.Equal(t, "f1", doc.Graphs[1].Name)
	assert.Equal(t, 3, doc.EventCount())

	events := doc.Graphs[0].Events
	require.NotNil(t, events[0].Node)
	assert.Equal(t, viz.Node{Identity: "0", TypeName: "Var", Detail: "name_hint:x\ndtype:float32"}, *events[0].Node)
	require.NotNil(t, events[2].Edge)
	assert.Equal(t, viz.Edge{Start: "0", End: "1"}, *events[2].Edge)
}

func TestReadEvents(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"json", sampleJSON, FormatJSON},
		{"yaml", sampleYAML, FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadEvents(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)
			checkSample(t, doc)
		})
	}
}

func TestReadEventsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		code   errors.Code
	}{
		{"malformed json", `{"graphs": [`, FormatJSON, errors.ErrCodeInvalidFormat},
		{"malformed yaml", "graphs: [unterminated", FormatYAML, errors.ErrCodeInvalidFormat},
		{"empty event", `{"graphs":[{"name":"g","events":[{}]}]}`, FormatJSON, errors.ErrCodeInvalidFormat},
		{"both fields", `{"graphs":[{"name":"g","events":[{"node":{"identity":"0"},"edge":{"start":"0","end":"1"}}]}]}`, FormatJSON, errors.ErrCodeInvalidFormat},
		{"unnamed graph", `{"graphs":[{"events":[]}]}`, FormatJSON, errors.ErrCodeInvalidFormat},
		{"unknown format", `{}`, Format("toml"), errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEvents(strings.NewReader(tt.input), tt.format)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"events.json", FormatJSON, false},
		{"EVENTS.JSON", FormatJSON, false},
		{"events.yaml", FormatYAML, false},
		{"dir/events.yml", FormatYAML, false},
		{"events.txt", "", true},
		{"events", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
}

func TestExportImportRoundTrip(t *testing.T) {
	doc, err := ReadEvents(strings.NewReader(sampleJSON), FormatJSON)
	require.NoError(t, err)

	for _, name := range []string{"events.json", "events.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, ExportEvents(doc, path))

			got, err := ImportEvents(path)
			require.NoError(t, err)
			checkSample(t, got)
		})
	}
}

func TestWriteEventsJSONIndented(t *testing.T) {
	doc := &Document{Graphs: []GraphEvents{{Name: "g", Events: []viz.Event{{Edge: &viz.Edge{Start: "a", End: "b"}}}}}}
	var buf bytes.Buffer
	require.NoError(t, WriteEvents(doc, &buf, FormatJSON))
	assert.Contains(t, buf.String(), "\n  \"graphs\"")
	assert.NotContains(t, buf.String(), `"node"`)
}

func TestImportEventsAsExtensionless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	_, err := ImportEvents(path)
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))

	got, err := ImportEventsAs(path, FormatYAML)
	require.NoError(t, err)
	checkSample(t, got)
}

func TestImportEventsMissingFile(t *testing.T) {
	_, err := ImportEvents(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	g := r.CreateGraph("main")
	require.NoError(t, g.Node(viz.Node{Identity: "0", TypeName: "Var"}))
	require.NoError(t, g.Edge(viz.Edge{Start: "0", End: "1"}))

	other := r.CreateGraph("other")
	require.NoError(t, other.Node(viz.Node{Identity: "9", TypeName: "Var"}))

	again := r.CreateGraph("main")
	require.NoError(t, again.Node(viz.Node{Identity: "5", TypeName: "Var"}))

	doc := r.Document()
	require.Len(t, doc.Graphs, 2)
	assert.Equal(t, "main", doc.Graphs[0].Name)
	require.Len(t, doc.Graphs[0].Events, 1)
	assert.Equal(t, "5", doc.Graphs[0].Events[0].Node.Identity)

	path := filepath.Join(t.TempDir(), "rec.yaml")
	paths, err := r.Render(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, paths)

	got, err := ImportEvents(path)
	require.NoError(t, err)
	assert.Equal(t, 2, got.EventCount())
}
