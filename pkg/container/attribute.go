package container

import (
	"bytes"
	"fmt"
)

// Attribute is one named value stored on a group.
type Attribute struct {
	Name   string
	Kind   Kind
	Values [][]byte // exactly one value for scalars
	Width  int      // fixed element width for arrays
}

// Scalar returns the value of a scalar attribute, or the first element of
// an array attribute.
func (a *Attribute) Scalar() []byte {
	if len(a.Values) == 0 {
		return nil
	}
	return a.Values[0]
}

// Strings returns the attribute values as strings.
func (a *Attribute) Strings() []string {
	out := make([]string, len(a.Values))
	for i, v := range a.Values {
		out[i] = string(v)
	}
	return out
}

// StoredSize returns the number of payload bytes the attribute occupies.
func (a *Attribute) StoredSize() int {
	if a.Kind == KindScalar {
		return len(a.Scalar())
	}
	return len(a.Values) * a.Width
}

// encode renders the attribute payload.
func (a *Attribute) encode() []byte {
	if a.Kind == KindScalar {
		return append([]byte(nil), a.Scalar()...)
	}
	buf := make([]byte, 0, a.StoredSize())
	for _, v := range a.Values {
		buf = append(buf, v...)
		buf = append(buf, make([]byte, a.Width-len(v))...)
	}
	return buf
}

// decodeAttribute rebuilds an attribute from its index entry and payload.
func decodeAttribute(m attrMeta, payload []byte) (*Attribute, error) {
	switch m.Kind {
	case KindScalar:
		return &Attribute{Name: m.Name, Kind: KindScalar, Values: [][]byte{bytes.Clone(payload)}}, nil
	case KindArray:
		if !arrayShapeFits(m.Width, m.Count, len(payload)) {
			return nil, fmt.Errorf("%w: attribute %s: %d elements of width %d in %d bytes",
				ErrCorrupt, m.Name, m.Count, m.Width, len(payload))
		}
		values := make([][]byte, m.Count)
		for i := range values {
			elem := payload[i*m.Width : (i+1)*m.Width]
			values[i] = bytes.Clone(bytes.TrimRight(elem, "\x00"))
		}
		return &Attribute{Name: m.Name, Kind: KindArray, Values: values, Width: m.Width}, nil
	default:
		return nil, fmt.Errorf("%w: attribute %s: unknown kind %q", ErrCorrupt, m.Name, m.Kind)
	}
}

// arrayShapeFits reports whether count elements of width bytes exactly fill
// size bytes. Zero-width arrays carry no payload, so their count is bounded
// by MaxIndexSize instead.
func arrayShapeFits(width, count, size int) bool {
	switch {
	case width < 0 || count < 0:
		return false
	case width == 0:
		return size == 0 && count <= MaxIndexSize
	default:
		return size%width == 0 && count == size/width
	}
}

// maxWidth returns the length of the longest value.
func maxWidth(values [][]byte) int {
	w := 0
	for _, v := range values {
		w = max(w, len(v))
	}
	return w
}
