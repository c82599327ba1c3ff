package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/layerbox/pkg/errors"
)

// Format identifies an event document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported,
			"unsupported event file %s: want .json, .yaml or .yml", filepath.Base(path))
	}
}

// ParseFormat converts a format name such as "json" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unknown event format %q: want json or yaml", s)
	}
}
