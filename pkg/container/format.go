package container

import (
	"time"

	"github.com/google/uuid"
)

// Format constants.
const (
	MagicBytes      = "LBOX"
	FormatVersion   = 1
	FixedHeaderSize = 64   // 0x40 bytes
	HeaderAlignment = 64   // data section starts on a 64-byte boundary
	ChecksumOffset  = 0x20 // SHA-256 checksum offset in the fixed header
	ChecksumSize    = 32
)

// ObjectHeaderLimit is the largest stored size, in bytes, of one array
// attribute.
const ObjectHeaderLimit = 64512

// MaxIndexSize bounds the JSON index accepted by Open.
const MaxIndexSize = 100 * 1024 * 1024

// Kind distinguishes scalar and array attributes.
type Kind string

// Attribute kinds.
const (
	KindScalar Kind = "scalar"
	KindArray  Kind = "array"
)

// index is the JSON document following the fixed header.
type index struct {
	ID        uuid.UUID   `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Limit     int         `json:"limit"`
	Attrs     []attrMeta  `json:"attrs"`
	Groups    []groupMeta `json:"groups"`
}

type groupMeta struct {
	Name  string     `json:"name"`
	Attrs []attrMeta `json:"attrs"`
}

// attrMeta locates one attribute payload in the data section.
type attrMeta struct {
	Name   string `json:"name"`
	Kind   Kind   `json:"kind"`
	Width  int    `json:"width,omitempty"`
	Count  int    `json:"count"`
	Offset int64  `json:"offset"`
	Size   int64  `json:"size"`
}
