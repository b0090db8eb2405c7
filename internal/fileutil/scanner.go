package fileutil

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/meredith/spikekit/internal/textfilter"
)

// ScanOptions configures the directory scanning behavior.
type ScanOptions struct {
	// Extensions is a list of file extensions to include (e.g. ".yaml").
	// A missing leading dot is added; matching is case-insensitive.
	// Empty means all files.
	Extensions []string
	// FileFilter keeps only file names it matches. Nil keeps all.
	FileFilter textfilter.Predicate
	// DirFilter is applied to subdirectory names during descent. A
	// directory that fails the predicate is pruned: nothing beneath it
	// is visited. The scan root itself is always visited. Nil keeps
	// all.
	DirFilter textfilter.Predicate
	// Recursive enables descending into subdirectories.
	Recursive bool
	// ExcludeDirs is a list of directory names to skip entirely.
	ExcludeDirs []string
	// MaxDepth limits recursion depth (0 = unlimited, 1 = root only).
	MaxDepth int
	// FollowLinks descends into symlinked directories. An unbounded
	// walk is possible when a link points back at an ancestor; visited
	// directories are not tracked.
	FollowLinks bool
}

// ScanResult contains the results of a directory scan.
type ScanResult struct {
	// Files contains the paths of all matched files, sorted.
	Files []string
	// Errors contains any non-fatal errors encountered during scanning.
	Errors []error
}

// WalkFiles yields the paths of matching files under dir, lazily, in
// the order the walk visits them. Each pair is either a path with a nil
// error or an empty path with the error hit while reading a directory;
// the walk continues past such errors.
func WalkFiles(dir string, opts ScanOptions) iter.Seq2[string, error] {
	exclude := make(map[string]bool, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		exclude[name] = true
	}
	return func(yield func(string, error) bool) {
		walkDir(dir, 1, opts, exclude, yield)
	}
}

func walkDir(dir string, depth int, opts ScanOptions, exclude map[string]bool, yield func(string, error) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return yield("", fmt.Errorf("reading %s: %w", dir, err))
	}

	var files, subdirs []string
	for _, entry := range entries {
		switch {
		case entry.IsDir():
			subdirs = append(subdirs, entry.Name())
		case entry.Type()&os.ModeSymlink != 0 && opts.FollowLinks:
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil {
				if !yield("", fmt.Errorf("resolving %s: %w", filepath.Join(dir, entry.Name()), err)) {
					return false
				}
				continue
			}
			if info.IsDir() {
				subdirs = append(subdirs, entry.Name())
			} else {
				files = append(files, entry.Name())
			}
		default:
			files = append(files, entry.Name())
		}
	}

	FilterExtensions(&files, opts.Extensions)
	textfilter.FilterInPlace(&files, opts.FileFilter)

	for _, name := range files {
		if !yield(filepath.Join(dir, name), nil) {
			return false
		}
	}

	if !opts.Recursive {
		return true
	}
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return true
	}
	// A subdirectory that fails the predicate is pruned together with
	// everything beneath it.
	textfilter.FilterInPlace(&subdirs, opts.DirFilter)
	for _, name := range subdirs {
		if exclude[name] || strings.HasPrefix(name, ".") {
			continue
		}
		if !walkDir(filepath.Join(dir, name), depth+1, opts, exclude, yield) {
			return false
		}
	}
	return true
}

// ScanDirectory scans a directory for files matching the provided
// options. Read errors below the root are collected in the result;
// only a bad root fails the call.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}
	for path, err := range WalkFiles(dir, opts) {
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Files = append(result.Files, path)
	}
	sort.Strings(result.Files)
	return result, nil
}

// FilterExtensions removes from *names every file name whose extension
// is not in extensions. Extensions missing a leading dot get one;
// comparison is case-insensitive. An empty extension list keeps
// everything. Include "" in extensions to also keep names without an
// extension.
func FilterExtensions(names *[]string, extensions []string) {
	if names == nil || len(extensions) == 0 {
		return
	}
	extMap := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}
	kept := (*names)[:0]
	for _, name := range *names {
		if extMap[strings.ToLower(filepath.Ext(name))] {
			kept = append(kept, name)
		}
	}
	*names = kept
}
