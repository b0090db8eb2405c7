// Package export orchestrates bulk movement of recording objects:
// reading many files into an object stream, grouping the stream into a
// directory-shaped tree, and writing it into a hierarchical container
// store under path-like keys.
package export

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/meredith/spikekit/internal/fileutil"
	"github.com/meredith/spikekit/internal/flatten"
	"github.com/meredith/spikekit/internal/neuro"
	"github.com/meredith/spikekit/internal/recio"
)

// ReadObjects reads recording files into a lazy object stream.
//
// filenames may be a single path string or any nesting of slices and
// maps of path strings; the nesting is flattened first. Every object
// read (including nested children) gets its file_origin attribute set
// to the path it came from.
func ReadObjects(reg *recio.Registry, filenames any) iter.Seq2[neuro.DomainObject, error] {
	return func(yield func(neuro.DomainObject, error) bool) {
		for v := range flatten.Flatten(filenames, false) {
			path, ok := v.(string)
			if !ok {
				yield(nil, fmt.Errorf("expected a file path, got %T", v))
				return
			}
			reader, err := reg.Open(path)
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			objs, err := reader.ReadAll()
			reader.Close()
			if err != nil {
				if !yield(nil, fmt.Errorf("read %s: %w", path, err)) {
					return
				}
				continue
			}
			for _, obj := range objs {
				if err := neuro.SetAllAttrs(obj, "file_origin", path, false); err != nil {
					if !yield(nil, err) {
						return
					}
					continue
				}
				if !yield(obj, nil) {
					return
				}
			}
		}
	}
}

// ReadDir scans a directory for recording files and reads them into a
// lazy object stream. Paths are reported relative to dir, so the
// file_origin attribute is rooted at dir.
func ReadDir(reg *recio.Registry, dir string, opts fileutil.ScanOptions) iter.Seq2[neuro.DomainObject, error] {
	if len(opts.Extensions) == 0 {
		opts.Extensions = reg.Extensions()
	}
	return func(yield func(neuro.DomainObject, error) bool) {
		for path, err := range fileutil.WalkFiles(dir, opts) {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				rel = path
			}
			for obj, err := range readOne(reg, path, rel) {
				if !yield(obj, err) {
					return
				}
			}
		}
	}
}

func readOne(reg *recio.Registry, path, rel string) iter.Seq2[neuro.DomainObject, error] {
	return func(yield func(neuro.DomainObject, error) bool) {
		reader, err := reg.Open(path)
		if err != nil {
			yield(nil, err)
			return
		}
		objs, err := reader.ReadAll()
		reader.Close()
		if err != nil {
			yield(nil, fmt.Errorf("read %s: %w", rel, err))
			return
		}
		for _, obj := range objs {
			if err := neuro.SetAllAttrs(obj, "file_origin", rel, false); err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			if !yield(obj, nil) {
				return
			}
		}
	}
}

// Tree is a nested grouping of objects keyed by directory segments.
// Leaves hold the objects whose file_origin sits directly in that
// directory.
type Tree struct {
	Children map[string]*Tree
	Objects  []neuro.DomainObject
}

func newTree() *Tree {
	return &Tree{Children: map[string]*Tree{}}
}

// BuildTree groups an object stream into a directory-shaped tree using
// each object's file_origin. Objects whose file_origin has no
// directory component land at the root.
func BuildTree(objs iter.Seq2[neuro.DomainObject, error]) (*Tree, error) {
	root := newTree()
	for obj, err := range objs {
		if err != nil {
			return nil, err
		}
		node := root
		dir := filepath.Dir(obj.FileOrigin())
		if dir != "." && dir != string(os.PathSeparator) {
			for _, seg := range strings.Split(dir, string(os.PathSeparator)) {
				child, ok := node.Children[seg]
				if !ok {
					child = newTree()
					node.Children[seg] = child
				}
				node = child
			}
		}
		node.Objects = append(node.Objects, obj)
	}
	return root, nil
}

// ExportOptions controls how store keys are derived during export.
type ExportOptions struct {
	// Flat stores everything under "/" instead of mirroring file_origin.
	Flat bool
	// WithCurrent appends an object's existing store path to the key,
	// preserving its position from a previous export. When false any
	// existing store path is overwritten.
	WithCurrent bool
}

// ExportToStore writes every object in objs into the store, deriving
// each key from the object's file_origin. The store is closed before
// returning, on error as well as on success.
func ExportToStore(objs any, store recio.Writer, opts ExportOptions) error {
	for v := range flatten.Flatten(objs, false) {
		obj, ok := v.(neuro.DomainObject)
		if !ok {
			store.Close()
			return fmt.Errorf("expected a recording object, got %T", v)
		}
		if err := store.Save(obj, storeKey(obj, opts)); err != nil {
			store.Close()
			return err
		}
	}
	return store.Close()
}

func storeKey(obj neuro.DomainObject, opts ExportOptions) string {
	path := obj.FileOrigin()
	if opts.Flat || path == "" {
		path = "/"
	} else {
		path = strings.TrimLeft(path, ".")
		path = strings.TrimLeft(path, string(os.PathSeparator))
		path = "/" + path
	}
	if opts.WithCurrent {
		path += obj.StorePath()
	}
	return path
}
