// Package bundle selects source files from a directory tree and concatenates
// them into a single bundle file.
package bundle

import (
	"errors"
	"fmt"
	"path/filepath"

	"mybundle/pkg/exclude"
)

var (
	// ErrOutputExists is returned when the bundle file is already on disk.
	ErrOutputExists = errors.New("output file already exists")
	// ErrDirectoryNotFound is returned when the bundle file's directory is missing.
	ErrDirectoryNotFound = errors.New("output directory not found")
	// ErrInvalidArgument is returned for unrecognized option values.
	ErrInvalidArgument = errors.New("invalid argument")
)

func newInvalidArgument(what, got string, want ...string) error {
	return fmt.Errorf("%w: %s %q (want one of %q)", ErrInvalidArgument, what, got, want)
}

// SortMode orders the selected files.
type SortMode int

const (
	// SortByName orders by base name only.
	SortByName SortMode = iota
	// SortByExtension orders by extension, then base name.
	SortByExtension
)

// ParseSortMode accepts the command-line spellings "ABC" and "Type".
func ParseSortMode(s string) (SortMode, error) {
	switch s {
	case "ABC", "":
		return SortByName, nil
	case "Type":
		return SortByExtension, nil
	default:
		return SortByName, newInvalidArgument("sort", s, "ABC", "Type")
	}
}

func (m SortMode) String() string {
	if m == SortByExtension {
		return "Type"
	}
	return "ABC"
}

// FileEntry is a file chosen for the bundle.
type FileEntry struct {
	Path string // Absolute, cleaned path.
}

// Name returns the base name of the file.
func (e FileEntry) Name() string {
	return filepath.Base(e.Path)
}

// Ext returns the file extension including the dot. Comparison is case-sensitive.
func (e FileEntry) Ext() string {
	return filepath.Ext(e.Path)
}

// Criteria holds the selection inputs.
type Criteria struct {
	Root          string        // Directory to scan.
	Excludes      []string      // Excluded markers.
	ExcludeMatch  exclude.Mode  // How markers are compared.
	IgnoreFile    string        // Optional gitignore-style file, relative to Root.
	Languages     string        // Requested languages or "all".
	LanguageMatch LanguageMatch // How Languages is resolved.
	Sort          SortMode
}

// Options holds the bundle writing inputs.
type Options struct {
	OutputPath       string // Must not exist yet.
	Note             bool   // Write a source line for every file.
	RemoveEmptyLines bool   // Drop empty lines, rewriting the source files.
	KeepSources      bool   // With RemoveEmptyLines, leave source files untouched.
	Author           string // Written as the first line when set.
}
