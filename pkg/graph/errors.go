package graph

import (
	"fmt"

	lberrors "github.com/matzehuels/layerbox/pkg/errors"
)

// MalformedDetailError is returned when a detail line does not split into
// exactly one key and one value.
type MalformedDetailError struct {
	Identity string // Node identity, empty when parsing outside a builder
	Line     string // Offending line
}

// Error implements the error interface.
func (e *MalformedDetailError) Error() string {
	if e.Identity != "" {
		return fmt.Sprintf("malformed detail for node %s: line %q must contain exactly one ':'", e.Identity, e.Line)
	}
	return fmt.Sprintf("malformed detail: line %q must contain exactly one ':'", e.Line)
}

// Code returns the error code for this error type.
func (e *MalformedDetailError) Code() lberrors.Code { return lberrors.ErrCodeMalformedDetail }

// MissingLayerError is returned by [Builder.Layers] when an edge references
// an identity that was never recorded as a node.
type MissingLayerError struct {
	Identity string
}

// Error implements the error interface.
func (e *MissingLayerError) Error() string {
	return fmt.Sprintf("no node recorded for identity %s", e.Identity)
}

// Code returns the error code for this error type.
func (e *MissingLayerError) Code() lberrors.Code { return lberrors.ErrCodeMissingLayer }
