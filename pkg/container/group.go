package container

import (
	"bytes"
	"fmt"
	"strings"
)

// Group is a named collection of attributes. The file root is a group with
// an empty name.
type Group struct {
	name     string
	limit    int
	readOnly bool
	attrs    []*Attribute
	byName   map[string]int
}

func newGroup(name string, limit int, readOnly bool) *Group {
	return &Group{
		name:     name,
		limit:    limit,
		readOnly: readOnly,
		byName:   make(map[string]int),
	}
}

// Name returns the group name.
func (g *Group) Name() string { return g.name }

// Limit returns the largest stored size of an array attribute in this group.
func (g *Group) Limit() int { return g.limit }

// SetScalar stores a scalar attribute, replacing any attribute of that name.
func (g *Group) SetScalar(name string, value []byte) error {
	if err := g.checkWritable(name); err != nil {
		return err
	}
	g.put(&Attribute{Name: name, Kind: KindScalar, Values: [][]byte{bytes.Clone(value)}})
	return nil
}

// SetArray stores an array attribute with the width of its longest element.
// It fails with ErrObjectTooLarge if the stored size exceeds the limit, and
// with ErrTrailingNUL for elements ending in NUL, which the fixed-width
// padding could not preserve.
func (g *Group) SetArray(name string, values [][]byte) error {
	return g.setArray(name, values, maxWidth(values))
}

func (g *Group) setArray(name string, values [][]byte, width int) error {
	if err := g.checkWritable(name); err != nil {
		return err
	}
	attr := &Attribute{Name: name, Kind: KindArray, Width: width, Values: make([][]byte, len(values))}
	for i, v := range values {
		if len(v) > width {
			return fmt.Errorf("attribute %s: element %d longer than width %d", name, i, width)
		}
		if hasTrailingNUL(v) {
			return fmt.Errorf("%w: attribute %s element %d", ErrTrailingNUL, name, i)
		}
		attr.Values[i] = bytes.Clone(v)
	}
	if size := attr.StoredSize(); size > g.limit {
		return fmt.Errorf("%w: attribute %s needs %d bytes, limit is %d", ErrObjectTooLarge, name, size, g.limit)
	}
	g.put(attr)
	return nil
}

// Attr returns the named attribute.
func (g *Group) Attr(name string) (*Attribute, bool) {
	i, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return g.attrs[i], true
}

// Attrs returns the attributes in the order they were first stored.
func (g *Group) Attrs() []*Attribute {
	return append([]*Attribute(nil), g.attrs...)
}

func (g *Group) checkWritable(name string) error {
	if g.readOnly {
		return ErrReadOnly
	}
	return validateName(name)
}

func (g *Group) put(a *Attribute) {
	if i, ok := g.byName[a.Name]; ok {
		g.attrs[i] = a
		return
	}
	g.byName[a.Name] = len(g.attrs)
	g.attrs = append(g.attrs, a)
}

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func hasTrailingNUL(v []byte) bool {
	return len(v) > 0 && v[len(v)-1] == 0
}
