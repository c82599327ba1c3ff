// Package config loads layerbox settings from a TOML file.
//
// Settings are optional; command-line flags override them and pipeline
// defaults fill whatever neither provides:
//
//	# layerbox.toml
//	backend    = "tvm.relay"
//	version    = "0.11"
//	limit      = 64512
//	output_dir = "out"
//	log_level  = "info"
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/layerbox/pkg/errors"
	"github.com/matzehuels/layerbox/pkg/pipeline"
)

// DefaultFileName is looked up in the working directory when no path is given.
const DefaultFileName = "layerbox.toml"

// validate is a singleton validator instance.
var validate = validator.New()

// Config holds settings read from a configuration file.
type Config struct {
	Backend    string `toml:"backend" validate:"omitempty,printascii,max=64"`
	Version    string `toml:"version" validate:"omitempty,printascii,max=32"`
	Limit      int    `toml:"limit" validate:"gte=0"`
	OutputDir  string `toml:"output_dir" validate:"omitempty,max=4096"`
	LogLevel   string `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	MetricsOut string `toml:"metrics_out" validate:"omitempty,max=4096"`
}

// Load reads the configuration at path. An empty path loads DefaultFileName
// if it exists and returns an empty Config otherwise.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if !explicit {
				return Config{}, nil
			}
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s not found", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Apply copies settings into opts for every field opts leaves unset.
func (c Config) Apply(opts *pipeline.Options) {
	if opts.Backend == "" {
		opts.Backend = c.Backend
	}
	if opts.Version == "" {
		opts.Version = c.Version
	}
	if opts.Limit == 0 {
		opts.Limit = c.Limit
	}
	if opts.OutputDir == "" {
		opts.OutputDir = c.OutputDir
	}
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: must be one of [%s]", fe.Field(), fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s: must be at least %s", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s: must be at most %s characters", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
