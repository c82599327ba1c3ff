package container

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// File is an open container. Files returned by [Create] are writable and are
// written to disk by Close; files returned by [Open] are read-only.
type File struct {
	path      string
	handle    *os.File
	id        uuid.UUID
	createdAt time.Time
	limit     int
	root      *Group
	groups    []*Group
	byName    map[string]*Group
	readOnly  bool
	closed    bool
}

// Option configures a File created with [Create].
type Option func(*File)

// WithLimit overrides the per-object limit for array attributes.
func WithLimit(limit int) Option {
	return func(f *File) { f.limit = limit }
}

// Create creates (or truncates) the container file at path.
func Create(path string, opts ...Option) (*File, error) {
	f := &File{
		path:      path,
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		limit:     ObjectHeaderLimit,
		byName:    make(map[string]*Group),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, f.limit)
	}

	handle, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	f.handle = handle
	f.root = newGroup("", f.limit, false)
	return f, nil
}

// Path returns the file path.
func (f *File) Path() string { return f.path }

// ID returns the container's unique identifier.
func (f *File) ID() uuid.UUID { return f.id }

// CreatedAt returns the creation time recorded in the container.
func (f *File) CreatedAt() time.Time { return f.createdAt }

// Limit returns the per-object limit for array attributes.
func (f *File) Limit() int { return f.limit }

// Root returns the root group.
func (f *File) Root() *Group { return f.root }

// CreateGroup adds a new group under the root.
func (f *File) CreateGroup(name string) (*Group, error) {
	switch {
	case f.closed:
		return nil, ErrClosed
	case f.readOnly:
		return nil, ErrReadOnly
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if _, ok := f.byName[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrGroupExists, name)
	}
	g := newGroup(name, f.limit, false)
	f.groups = append(f.groups, g)
	f.byName[name] = g
	return g, nil
}

// Group returns the named group.
func (f *File) Group(name string) (*Group, bool) {
	g, ok := f.byName[name]
	return g, ok
}

// Groups returns the groups in creation order.
func (f *File) Groups() []*Group {
	return append([]*Group(nil), f.groups...)
}

// Close writes a writable container to disk and releases the file handle.
// Calling Close more than once is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.readOnly {
		return nil
	}

	_, werr := f.WriteTo(f.handle)
	cerr := f.handle.Close()
	if werr != nil {
		return fmt.Errorf("write %s: %w", f.path, werr)
	}
	if cerr != nil {
		return fmt.Errorf("close %s: %w", f.path, cerr)
	}
	return nil
}
