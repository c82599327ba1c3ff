package export

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/layerbox/pkg/container"
)

// Container layout names.
const (
	GroupName       = "model_weights"
	AttrModelConfig = "model_config"
	AttrBackend     = "backend"
	AttrVersion     = "tvm_version"
	AttrLayerNames  = "layer_names"
)

// Extension is appended to every container path.
const Extension = ".lbox"

// Defaults for the framework identity stored in each container.
const (
	DefaultBackend = "tvm.relay"
	DefaultVersion = "0.11"
)

// Options configures a [Writer] or [Plotter]. Zero values select defaults.
type Options struct {
	Backend   string      // backend attribute, DefaultBackend if empty
	Version   string      // tvm_version attribute, DefaultVersion if empty
	Limit     int         // per-object limit, container.ObjectHeaderLimit if zero
	OutputDir string      // directory for default destinations
	Logger    *log.Logger // log.Default() if nil
}

func (o Options) withDefaults() Options {
	if o.Backend == "" {
		o.Backend = DefaultBackend
	}
	if o.Version == "" {
		o.Version = DefaultVersion
	}
	if o.Limit == 0 {
		o.Limit = container.ObjectHeaderLimit
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}
