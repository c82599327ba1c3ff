package container

import (
	"errors"
	"fmt"
	"strings"

	lberrors "github.com/matzehuels/layerbox/pkg/errors"
)

// Common errors.
var (
	ErrObjectTooLarge     = errors.New("attribute exceeds object header limit")
	ErrInvalidLimit       = errors.New("object limit must be positive")
	ErrInvalidName        = errors.New("invalid attribute or group name")
	ErrGroupExists        = errors.New("group already exists")
	ErrAttrNotFound       = errors.New("attribute not found")
	ErrReadOnly           = errors.New("container is read-only")
	ErrClosed             = errors.New("container is closed")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrIndexTooLarge      = errors.New("index exceeds maximum size")
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrCorrupt            = errors.New("corrupt container")
	ErrTrailingNUL        = errors.New("array element ends in NUL")
)

// OversizedElementError is returned by [StoreAttribute] when one or more
// elements exceed the object limit on their own, so no chunking can help.
type OversizedElementError struct {
	Attribute string   // Attribute being stored
	Limit     int      // Object limit in bytes
	Elements  []string // Offending elements
}

// Error implements the error interface.
func (e *OversizedElementError) Error() string {
	return fmt.Sprintf("attribute %s: the following elements are larger than %d bytes: %s",
		e.Attribute, e.Limit, strings.Join(e.Elements, ", "))
}

// Code returns the error code for this error type.
func (e *OversizedElementError) Code() lberrors.Code { return lberrors.ErrCodeOversizedElement }
