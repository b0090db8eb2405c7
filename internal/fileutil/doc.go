// Package fileutil provides directory scanning for recording files.
//
// Scanning supports recursive and depth-limited traversal, extension
// filtering, and predicate-based filtering of both file names and
// directory paths. Filters are applied in place on the name slices the
// walk produces, so a directory whose relative path fails the
// directory predicate contributes no files.
//
// Two entry points are offered: WalkFiles yields matching paths lazily
// as the walk proceeds, while ScanDirectory collects them into a
// sorted result and accumulates non-fatal errors instead of aborting.
package fileutil
