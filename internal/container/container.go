// Package container implements the hierarchical binary file format used to
// persist per-player visited-country state. A container is a tree of named
// groups; each group carries string attributes and string-list datasets.
// Datasets are either fixed-size (optionally gzip-compressed on disk) or
// growable.
//
// The whole container is held in memory between Open and Save. Callers are
// expected to follow an open -> mutate -> save discipline per operation;
// the format provides no cross-process coordination.
package container

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrInvalidFormat indicates the file is not a valid container
	ErrInvalidFormat = errors.New("container: invalid file format")
	// ErrFixedDataset is returned when resizing a non-growable dataset
	ErrFixedDataset = errors.New("container: dataset is not growable")
	// ErrDatasetExists is returned when creating a dataset that already exists
	ErrDatasetExists = errors.New("container: dataset already exists")
)

// File is an open container backed by a file on disk
type File struct {
	path string
	root *Group
}

// Group is a node in the container tree
type Group struct {
	attrs    map[string]string
	groups   map[string]*Group
	datasets map[string]*Dataset
}

// Dataset is an ordered list of strings stored under a group
type Dataset struct {
	values     []string
	growable   bool
	compressed bool
}

// DatasetOptions control how a dataset is created
type DatasetOptions struct {
	// Growable datasets may be resized after creation
	Growable bool
	// Compressed datasets are gzip-compressed on disk; only valid for
	// fixed datasets
	Compressed bool
}

func newGroup() *Group {
	return &Group{
		attrs:    make(map[string]string),
		groups:   make(map[string]*Group),
		datasets: make(map[string]*Dataset),
	}
}

// Create makes a new, empty container at path, replacing any existing file.
// The parent directory is created if needed and the empty container is
// written to disk immediately.
func Create(path string) (*File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating container directory: %w", err)
		}
	}

	f := &File{path: path, root: newGroup()}
	if err := f.Save(); err != nil {
		return nil, err
	}
	return f, nil
}

// Open reads an existing container from path. A missing file yields an
// error satisfying errors.Is(err, os.ErrNotExist).
func Open(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	root, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("reading container %s: %w", path, err)
	}
	return &File{path: path, root: root}, nil
}

// Save writes the container back to its path. The encoded bytes go to a
// temporary file first and are renamed into place, so a crash mid-save
// leaves the previous container intact.
func (f *File) Save() error {
	data, err := encode(f.root)
	if err != nil {
		return fmt.Errorf("encoding container: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("writing container: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing container: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing container: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing container: %w", err)
	}
	return nil
}

// Verify checks that raw bytes decode as a container image without
// touching the filesystem. Callers use it to vet uploaded data before
// replacing a container file.
func Verify(raw []byte) error {
	_, err := decode(raw)
	return err
}

// Path returns the file path the container is backed by
func (f *File) Path() string {
	return f.path
}

// Root returns the container's root group
func (f *File) Root() *Group {
	return f.root
}

// GroupAt resolves a slash-separated path ("players/alice") from the root.
// A leading slash is permitted.
func (f *File) GroupAt(path string) (*Group, bool) {
	g := f.root
	for _, name := range splitPath(path) {
		child, ok := g.groups[name]
		if !ok {
			return nil, false
		}
		g = child
	}
	return g, true
}

// RequireGroupAt resolves a slash-separated path, creating any missing
// intermediate groups along the way.
func (f *File) RequireGroupAt(path string) *Group {
	g := f.root
	for _, name := range splitPath(path) {
		g = g.RequireGroup(name)
	}
	return g
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Group operations

// Group returns the named child group
func (g *Group) Group(name string) (*Group, bool) {
	child, ok := g.groups[name]
	return child, ok
}

// RequireGroup returns the named child group, creating it if absent
func (g *Group) RequireGroup(name string) *Group {
	if child, ok := g.groups[name]; ok {
		return child
	}
	child := newGroup()
	g.groups[name] = child
	return child
}

// DeleteGroup removes the named child group and everything beneath it.
// Returns false if no such group exists.
func (g *Group) DeleteGroup(name string) bool {
	if _, ok := g.groups[name]; !ok {
		return false
	}
	delete(g.groups, name)
	return true
}

// GroupNames returns the names of the direct child groups, sorted
func (g *Group) GroupNames() []string {
	names := make([]string, 0, len(g.groups))
	for name := range g.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Attribute operations

// Attr returns the named attribute value
func (g *Group) Attr(name string) (string, bool) {
	v, ok := g.attrs[name]
	return v, ok
}

// SetAttr sets the named attribute
func (g *Group) SetAttr(name, value string) {
	g.attrs[name] = value
}

// HasAttr reports whether the named attribute is set
func (g *Group) HasAttr(name string) bool {
	_, ok := g.attrs[name]
	return ok
}

// Dataset operations

// Dataset returns the named dataset
func (g *Group) Dataset(name string) (*Dataset, bool) {
	d, ok := g.datasets[name]
	return d, ok
}

// CreateDataset creates a dataset under the group with the given initial
// values. Compressed growable datasets are not supported.
func (g *Group) CreateDataset(name string, values []string, opts DatasetOptions) (*Dataset, error) {
	if _, ok := g.datasets[name]; ok {
		return nil, ErrDatasetExists
	}
	if opts.Growable && opts.Compressed {
		return nil, fmt.Errorf("container: growable datasets cannot be compressed")
	}

	d := &Dataset{
		values:     append([]string(nil), values...),
		growable:   opts.Growable,
		compressed: opts.Compressed,
	}
	g.datasets[name] = d
	return d, nil
}

// Len returns the number of values in the dataset
func (d *Dataset) Len() int {
	return len(d.values)
}

// Growable reports whether the dataset may be resized
func (d *Dataset) Growable() bool {
	return d.growable
}

// Values returns a copy of the dataset's contents
func (d *Dataset) Values() []string {
	return append([]string(nil), d.values...)
}

// Resize changes the dataset's length. Shrinking truncates; growing pads
// with empty strings.
func (d *Dataset) Resize(n int) error {
	if !d.growable {
		return ErrFixedDataset
	}
	if n < 0 {
		return fmt.Errorf("container: negative dataset size %d", n)
	}
	if n <= len(d.values) {
		d.values = d.values[:n]
		return nil
	}
	for len(d.values) < n {
		d.values = append(d.values, "")
	}
	return nil
}

// SetAll overwrites the dataset's contents. For fixed datasets the new
// values must match the existing length.
func (d *Dataset) SetAll(values []string) error {
	if !d.growable && len(values) != len(d.values) {
		return ErrFixedDataset
	}
	d.values = append(d.values[:0:0], values...)
	return nil
}
