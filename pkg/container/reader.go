package container

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	lberrors "github.com/matzehuels/layerbox/pkg/errors"
)

// Open reads and verifies the container file at path. The returned File is
// read-only.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, lberrors.Wrap(lberrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	f, err := Decode(data)
	if err != nil {
		return nil, lberrors.Wrap(lberrors.ErrCodeCorruptContainer, err, "read %s", path)
	}
	f.path = path
	return f, nil
}

// Decode parses a serialized container.
func Decode(buf []byte) (*File, error) {
	if len(buf) < FixedHeaderSize {
		return nil, fmt.Errorf("%w: file too small (%d bytes)", ErrCorrupt, len(buf))
	}
	if !bytes.Equal(buf[0:4], []byte(MagicBytes)) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidMagic, buf[0:4])
	}
	if v := binary.LittleEndian.Uint32(buf[0x04:]); v != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	indexSize := binary.LittleEndian.Uint64(buf[0x10:])
	dataSize := binary.LittleEndian.Uint64(buf[0x18:])
	if indexSize > MaxIndexSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrIndexTooLarge, indexSize)
	}

	size := uint64(len(buf))
	indexEnd := uint64(FixedHeaderSize) + indexSize
	dataStart := indexEnd + uint64(alignPadding(int(indexEnd)))
	if dataStart > size {
		return nil, fmt.Errorf("%w: index of %d bytes exceeds file of %d", ErrCorrupt, indexSize, size)
	}
	if dataSize != size-dataStart {
		return nil, fmt.Errorf("%w: data section of %d bytes, file holds %d", ErrCorrupt, dataSize, size-dataStart)
	}

	data := buf[dataStart:]
	var want [ChecksumSize]byte
	copy(want[:], buf[ChecksumOffset:ChecksumOffset+ChecksumSize])
	if sha256.Sum256(data) != want {
		return nil, ErrChecksumMismatch
	}

	var idx index
	if err := json.Unmarshal(buf[FixedHeaderSize:indexEnd], &idx); err != nil {
		return nil, fmt.Errorf("%w: index: %v", ErrCorrupt, err)
	}

	f := &File{
		id:        idx.ID,
		createdAt: idx.CreatedAt,
		limit:     idx.Limit,
		byName:    make(map[string]*Group),
		readOnly:  true,
	}
	root, err := readGroup("", idx.Attrs, data, idx.Limit)
	if err != nil {
		return nil, err
	}
	f.root = root
	for _, gm := range idx.Groups {
		if _, dup := f.byName[gm.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate group %s", ErrCorrupt, gm.Name)
		}
		g, err := readGroup(gm.Name, gm.Attrs, data, idx.Limit)
		if err != nil {
			return nil, err
		}
		f.groups = append(f.groups, g)
		f.byName[g.name] = g
	}
	return f, nil
}

func readGroup(name string, metas []attrMeta, data []byte, limit int) (*Group, error) {
	g := newGroup(name, limit, true)
	for _, m := range metas {
		n := int64(len(data))
		if m.Offset < 0 || m.Size < 0 || m.Offset > n || m.Size > n-m.Offset {
			return nil, fmt.Errorf("%w: attribute %s out of bounds", ErrCorrupt, m.Name)
		}
		a, err := decodeAttribute(m, data[m.Offset:m.Offset+m.Size])
		if err != nil {
			return nil, err
		}
		g.put(a)
	}
	return g, nil
}
