package container

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// WriteTo serializes the container to w.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	idx := index{
		ID:        f.id,
		CreatedAt: f.createdAt,
		Limit:     f.limit,
	}

	var data bytes.Buffer
	idx.Attrs = appendAttrs(&data, f.root)
	for _, g := range f.groups {
		idx.Groups = append(idx.Groups, groupMeta{Name: g.name, Attrs: appendAttrs(&data, g)})
	}

	indexJSON, err := json.Marshal(idx)
	if err != nil {
		return 0, fmt.Errorf("marshal index: %w", err)
	}

	header := makeFixedHeader(uint64(len(indexJSON)), uint64(data.Len()), sha256.Sum256(data.Bytes()))
	padding := alignPadding(FixedHeaderSize + len(indexJSON))

	var n int64
	for _, chunk := range [][]byte{header, indexJSON, make([]byte, padding), data.Bytes()} {
		m, err := w.Write(chunk)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// appendAttrs writes each attribute payload of g to data and returns the
// matching index entries.
func appendAttrs(data *bytes.Buffer, g *Group) []attrMeta {
	metas := make([]attrMeta, 0, len(g.attrs))
	for _, a := range g.attrs {
		payload := a.encode()
		metas = append(metas, attrMeta{
			Name:   a.Name,
			Kind:   a.Kind,
			Width:  a.Width,
			Count:  len(a.Values),
			Offset: int64(data.Len()),
			Size:   int64(len(payload)),
		})
		data.Write(payload)
	}
	return metas
}

func makeFixedHeader(indexSize, dataSize uint64, checksum [ChecksumSize]byte) []byte {
	header := make([]byte, FixedHeaderSize)
	copy(header[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(header[0x04:], FormatVersion)
	binary.LittleEndian.PutUint32(header[0x08:], 0) // flags
	binary.LittleEndian.PutUint64(header[0x10:], indexSize)
	binary.LittleEndian.PutUint64(header[0x18:], dataSize)
	copy(header[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])
	return header
}

func alignPadding(n int) int {
	if rem := n % HeaderAlignment; rem != 0 {
		return HeaderAlignment - rem
	}
	return 0
}
