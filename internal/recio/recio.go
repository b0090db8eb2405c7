// Package recio reads and writes recording files.
//
// Readers are looked up by file extension in a Registry, so callers
// never depend on a concrete file format. A Writer stores objects
// under hierarchical path-like keys inside a single container file;
// the SQLite-backed implementation lives in the objstore package.
package recio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/meredith/spikekit/internal/neuro"
)

// Reader reads every object out of one recording file.
type Reader interface {
	// ReadAll returns all top-level objects in the file.
	ReadAll() ([]neuro.DomainObject, error)
	// Close releases the underlying file.
	Close() error
}

// Writer stores objects under hierarchical path-like keys inside a
// container file.
type Writer interface {
	// Save writes one object under the given path-like key.
	Save(obj neuro.DomainObject, path string) error
	// Close flushes and releases the container file.
	Close() error
}

// OpenFunc opens one recording file for reading.
type OpenFunc func(path string) (Reader, error)

// Registry maps file extensions to reader constructors.
type Registry struct {
	byExt map[string]OpenFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]OpenFunc)}
}

// Register associates an extension (with or without leading dot,
// case-insensitive) with an opener.
func (r *Registry) Register(ext string, fn OpenFunc) {
	r.byExt[normalizeExt(ext)] = fn
}

// Extensions returns the registered extensions.
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		out = append(out, ext)
	}
	return out
}

// Open opens a recording file with the reader registered for its
// extension.
func (r *Registry) Open(path string) (Reader, error) {
	ext := normalizeExt(filepath.Ext(path))
	fn, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("no reader registered for extension %q (%s)", ext, path)
	}
	return fn(path)
}

// DefaultRegistry returns a registry with the built-in readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(".yaml", OpenYAML)
	r.Register(".yml", OpenYAML)
	return r
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
