// Package container implements the layerbox container file: a flat tree of
// named groups holding named attributes, written as a single binary file.
//
// # Attributes and the object limit
//
// An attribute is either a scalar (one byte string) or an array of byte
// strings. Arrays are stored with a fixed element width, the length of their
// longest element, so an array of n elements occupies n × width bytes.
//
// Every array attribute is a single stored object and may not exceed the
// per-object limit ([ObjectHeaderLimit] by default, 64512 bytes). Scalars use
// dense storage and are not bound by the limit, which keeps large JSON
// documents such as a model configuration storable.
//
// # Chunking
//
// [StoreAttribute] stores an arbitrarily long array by splitting it into the
// smallest number k of contiguous, near-equal partitions whose stored sizes
// all fit the limit. With k == 1 the array is stored under its own name;
// otherwise partition i is stored as name+i (layer_names0, layer_names1, …).
// [LoadAttribute] reverses either form. An element that alone exceeds the
// limit cannot be chunked and fails with [OversizedElementError].
//
// # File Format
//
//	0x00  [4]  magic "LBOX"
//	0x04  [4]  format version (uint32 LE)
//	0x08  [4]  flags (uint32 LE, reserved)
//	0x0C  [4]  reserved
//	0x10  [8]  index size (uint64 LE)
//	0x18  [8]  data size (uint64 LE)
//	0x20  [32] SHA-256 of the data section
//	0x40       JSON index, padded to a 64-byte boundary
//	           data section: attribute payloads
//
// Array payloads are NUL-padded to their width; readers trim trailing NULs,
// so array elements may not themselves end in NUL.
//
// # Usage
//
//	f, err := container.Create("model.lbox")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	g, err := f.CreateGroup("model_weights")
//	if err != nil {
//	    return err
//	}
//	_, err = container.StoreAttribute(g, "layer_names", names)
//
// A File opened for writing keeps its content in memory and writes it when
// closed; Close always releases the file handle. Writes are not transactional:
// whatever was stored before a failure is written on Close.
package container
