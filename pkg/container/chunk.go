package container

import (
	"fmt"
	"strconv"
)

// Split divides values into k contiguous partitions. The first len(values)%k
// partitions hold one element more than the rest; partitions may be empty
// when k exceeds len(values). Split panics if k < 1.
func Split(values [][]byte, k int) [][][]byte {
	if k < 1 {
		panic("container: Split requires k >= 1")
	}
	n := len(values)
	size, extra := n/k, n%k
	parts := make([][][]byte, k)
	start := 0
	for i := range parts {
		end := start + size
		if i < extra {
			end++
		}
		parts[i] = values[start:end]
		start = end
	}
	return parts
}

// ChunkName returns the attribute name used for partition i.
func ChunkName(name string, i int) string {
	return name + strconv.Itoa(i)
}

// StoreAttribute stores values on g as one array attribute, or as the fewest
// numbered partitions that each fit the group's object limit. It returns the
// number of partitions written; 1 means the attribute was stored under name.
//
// Every partition uses the width of the longest element in values. If any
// element alone exceeds the limit, nothing is stored and an
// [OversizedElementError] listing the offenders is returned. Elements must
// not end in NUL; such input is rejected with ErrTrailingNUL before anything
// is stored.
func StoreAttribute(g *Group, name string, values [][]byte) (int, error) {
	limit := g.Limit()

	var oversized []string
	for i, v := range values {
		if hasTrailingNUL(v) {
			return 0, fmt.Errorf("%w: attribute %s element %d", ErrTrailingNUL, name, i)
		}
		if len(v) > limit {
			oversized = append(oversized, string(v))
		}
	}
	if len(oversized) > 0 {
		return 0, &OversizedElementError{Attribute: name, Limit: limit, Elements: oversized}
	}

	width := maxWidth(values)
	parts := Split(values, chunkCount(values, width, limit))
	if len(parts) == 1 {
		if err := g.setArray(name, parts[0], width); err != nil {
			return 0, err
		}
		return 1, nil
	}
	for i, part := range parts {
		if err := g.setArray(ChunkName(name, i), part, width); err != nil {
			return i, fmt.Errorf("store chunk %d of %s: %w", i, name, err)
		}
	}
	return len(parts), nil
}

// chunkCount returns the smallest k whose partitions all fit limit. The
// largest partition of Split(values, k) has ceil(n/k) elements.
func chunkCount(values [][]byte, width, limit int) int {
	n := len(values)
	for k := 1; k < n; k++ {
		largest := (n + k - 1) / k
		if largest*width <= limit {
			return k
		}
	}
	return max(n, 1)
}

// LoadAttribute reads an array attribute written by StoreAttribute. The
// unchunked name takes precedence; otherwise name0, name1, … are
// concatenated until the first missing index.
func LoadAttribute(g *Group, name string) ([][]byte, error) {
	if a, ok := g.Attr(name); ok {
		return a.Values, nil
	}
	var out [][]byte
	found := false
	for i := 0; ; i++ {
		a, ok := g.Attr(ChunkName(name, i))
		if !ok {
			break
		}
		found = true
		out = append(out, a.Values...)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s in group %q", ErrAttrNotFound, name, g.Name())
	}
	return out, nil
}

// LoadStrings is LoadAttribute returning strings.
func LoadStrings(g *Group, name string) ([]string, error) {
	values, err := LoadAttribute(g, name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out, nil
}

// Bytes converts strings to the byte slices stored by StoreAttribute.
func Bytes(values []string) [][]byte {
	out := make([][]byte, len(values))
	for i, v := range values {
		out[i] = []byte(v)
	}
	return out
}
