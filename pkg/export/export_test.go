package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/layerbox/pkg/container"
	lberrors "github.com/matzehuels/layerbox/pkg/errors"
	"github.com/matzehuels/layerbox/pkg/graph"
	"github.com/matzehuels/layerbox/pkg/observability"
	"github.com/matzehuels/layerbox/pkg/viz"
)

// chain records n nodes linked 0 -> 1 -> ... -> n-1.
func chain(t *testing.T, g viz.Graph, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		id := fmt.Sprint(i)
		require.NoError(t, g.Node(viz.Node{Identity: id, TypeName: "nn.dense", Detail: "dtype:float32"}))
		if i > 0 {
			require.NoError(t, g.Edge(viz.Edge{Start: fmt.Sprint(i - 1), End: id}))
		}
	}
}

func readContainer(t *testing.T, path string) (*container.File, Manifest, []string) {
	t.Helper()
	f, err := container.Open(path)
	require.NoError(t, err)

	cfg, ok := f.Root().Attr(AttrModelConfig)
	require.True(t, ok, "model_config missing")
	m, err := DecodeManifest(cfg.Scalar())
	require.NoError(t, err)

	g, ok := f.Group(GroupName)
	require.True(t, ok, "model_weights missing")
	names, err := container.LoadStrings(g, AttrLayerNames)
	require.NoError(t, err)
	return f, m, names
}

func TestWriterWrite(t *testing.T) {
	b := graph.NewBuilder("main")
	require.NoError(t, b.Node(viz.Node{Identity: "0", TypeName: "Var", Detail: "name_hint:x\ndtype:float32"}))
	require.NoError(t, b.Node(viz.Node{Identity: "1", TypeName: "add", Detail: "out_dtype: "}))
	require.NoError(t, b.Edge(viz.Edge{Start: "0", End: "1"}))
	layers, err := b.Layers()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "main.lbox")
	sum, err := NewWriter(Options{}).Write("main", layers, path)
	require.NoError(t, err)
	assert.Equal(t, Summary{Graph: "main", Path: path, Layers: 2, Chunks: 1}, sum)

	f, m, names := readContainer(t, path)
	assert.Equal(t, []string{"Var_0", "add_1"}, names)
	assert.Equal(t, ManifestClassName, m.ClassName)
	assert.Equal(t, ManifestModelName, m.Config.Name)
	require.Len(t, m.Config.Layers, 2)
	assert.Equal(t, "x", m.Config.Layers[0].Config["name"])
	assert.Equal(t, "float32", m.Config.Layers[1].Config["dtype"])
	assert.Equal(t, "Var_0", m.Config.Layers[1].InboundNodes[0].Name)

	g, _ := f.Group(GroupName)
	backend, _ := g.Attr(AttrBackend)
	version, _ := g.Attr(AttrVersion)
	assert.Equal(t, DefaultBackend, string(backend.Scalar()))
	assert.Equal(t, DefaultVersion, string(version.Scalar()))

	_, chunked := g.Attr(AttrLayerNames + "0")
	assert.False(t, chunked)
}

func TestWriterManifestEncoding(t *testing.T) {
	data, err := NewManifest(nil).Encode()
	require.NoError(t, err)
	assert.Equal(t, `{"class_name":"Model","config":{"name":"model","layers":[]}}`, string(data))
}

func TestWriterCustomIdentity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.lbox")
	_, err := NewWriter(Options{Backend: "relay", Version: "1.0"}).Write("x", nil, path)
	require.NoError(t, err)

	f, _, names := readContainer(t, path)
	assert.Empty(t, names)
	g, _ := f.Group(GroupName)
	backend, _ := g.Attr(AttrBackend)
	assert.Equal(t, "relay", string(backend.Scalar()))
}

func TestWriterChunksLayerNames(t *testing.T) {
	p := NewPlotter(Options{Limit: 64, OutputDir: t.TempDir()})
	chain(t, p.CreateGraph("big"), 40)

	paths, err := p.Render("")
	require.NoError(t, err)
	require.Len(t, paths, 1)

	sums := p.Summaries()
	require.Len(t, sums, 1)
	assert.Greater(t, sums[0].Chunks, 1)

	f, m, names := readContainer(t, paths[0])
	assert.Len(t, names, 40)
	assert.Equal(t, "nn.dense_0", names[0])
	assert.Equal(t, "nn.dense_39", names[39])
	assert.Len(t, m.Config.Layers, 40)

	g, _ := f.Group(GroupName)
	_, plain := g.Attr(AttrLayerNames)
	assert.False(t, plain, "chunked names must not also be stored unchunked")
	for i := 0; i < sums[0].Chunks; i++ {
		a, ok := g.Attr(container.ChunkName(AttrLayerNames, i))
		require.True(t, ok)
		assert.LessOrEqual(t, a.StoredSize(), 64)
	}
}

type exportRecorder struct {
	observability.NoopExportHooks
	written   int
	oversized int
	lastErr   error
}

func (r *exportRecorder) OnContainerWritten(_ string, _, _ int, _ time.Duration, err error) {
	r.written++
	r.lastErr = err
}

func (r *exportRecorder) OnOversizedElements(_ string, count int) { r.oversized += count }

func TestWriterOversizedElement(t *testing.T) {
	rec := &exportRecorder{}
	observability.SetExportHooks(rec)
	defer observability.Reset()

	layers := []graph.Layer{{Name: strings.Repeat("n", 20)}, {Name: "ok"}}
	path := filepath.Join(t.TempDir(), "o.lbox")
	_, err := NewWriter(Options{Limit: 16}).Write("o", layers, path)

	var oe *container.OversizedElementError
	require.True(t, errors.As(err, &oe))
	assert.True(t, lberrors.Is(err, lberrors.ErrCodeOversizedElement))
	assert.Equal(t, 1, rec.oversized)
	assert.Equal(t, 1, rec.written)
	assert.Error(t, rec.lastErr)

	// The container was still closed and holds what was stored first.
	f, err := container.Open(path)
	require.NoError(t, err)
	_, ok := f.Root().Attr(AttrModelConfig)
	assert.True(t, ok)
}

func TestPlotterDestination(t *testing.T) {
	tests := []struct {
		name      string
		graphs    []string
		outputDir string
		dest      string
		want      []string
	}{
		{"default name", []string{"main"}, "", "", []string{"main.lbox"}},
		{"default in output dir", []string{"main"}, "out", "", []string{filepath.Join("out", "main.lbox")}},
		{"explicit single", []string{"main"}, "", "model", []string{"model.lbox"}},
		{"explicit keeps extension", []string{"main"}, "", "model.lbox", []string{"model.lbox"}},
		{"explicit many", []string{"main", "f1"}, "", "model", []string{"model_main.lbox", "model_f1.lbox"}},
		{"default many", []string{"main", "f1"}, "", "", []string{"main.lbox", "f1.lbox"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlotter(Options{OutputDir: tt.outputDir})
			for _, g := range tt.graphs {
				p.CreateGraph(g)
			}
			var got []string
			for _, g := range tt.graphs {
				path, err := p.Destination(g, tt.dest)
				require.NoError(t, err)
				got = append(got, path)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlotterDestinationInvalid(t *testing.T) {
	p := NewPlotter(Options{})
	_, err := p.Destination("../escape", "")
	assert.True(t, lberrors.Is(err, lberrors.ErrCodeInvalidGraphName))

	_, err = p.Destination("main", "out/")
	assert.True(t, lberrors.Is(err, lberrors.ErrCodeInvalidPath))
}

func TestPlotterDestinationNameOnlyInFileName(t *testing.T) {
	p := NewPlotter(Options{})
	p.CreateGraph("a/b")

	path, err := p.Destination("a/b", "model")
	require.NoError(t, err)
	assert.Equal(t, "model"+Extension, path)

	_, err = p.Destination("a/b", "")
	assert.True(t, lberrors.Is(err, lberrors.ErrCodeInvalidGraphName))

	p.CreateGraph("main")
	_, err = p.Destination("a/b", "model")
	assert.True(t, lberrors.Is(err, lberrors.ErrCodeInvalidGraphName))
}

func TestPlotterRenderPerCallNaming(t *testing.T) {
	dir := t.TempDir()
	p := NewPlotter(Options{})
	chain(t, p.CreateGraph("a"), 2)

	first, err := p.Render(filepath.Join(dir, "one"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "one.lbox")}, first)

	second, err := p.Render(filepath.Join(dir, "two"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "two.lbox")}, second)
}

func TestPlotterRecreateReplaces(t *testing.T) {
	p := NewPlotter(Options{OutputDir: t.TempDir()})
	chain(t, p.CreateGraph("main"), 3)
	chain(t, p.CreateGraph("other"), 1)
	fresh := p.CreateGraph("main")
	chain(t, fresh, 1)

	assert.Equal(t, []string{"main", "other"}, p.Names())
	b, ok := p.Builder("main")
	require.True(t, ok)
	assert.Same(t, fresh, viz.Graph(b))
	assert.Equal(t, 1, b.NodeCount())

	paths, err := p.Render("")
	require.NoError(t, err)
	_, _, names := readContainer(t, paths[0])
	assert.Equal(t, []string{"nn.dense_0"}, names)
}

func TestPlotterRenderStopsAtFirstError(t *testing.T) {
	p := NewPlotter(Options{OutputDir: t.TempDir()})
	chain(t, p.CreateGraph("good"), 2)
	broken := p.CreateGraph("broken")
	require.NoError(t, broken.Edge(viz.Edge{Start: "0", End: "1"}))
	chain(t, p.CreateGraph("never"), 1)

	paths, err := p.Render("")
	require.Error(t, err)
	assert.Len(t, paths, 1)
	assert.True(t, lberrors.Is(err, lberrors.ErrCodeMissingLayer))
	assert.Len(t, p.Summaries(), 1)
}
