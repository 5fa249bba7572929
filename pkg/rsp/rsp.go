// Package rsp builds, writes and reads response files: plain-text files that
// hold a complete bundle invocation for later reuse with @file.
package rsp

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// DefaultFileName is the response file written by create-rsp.
const DefaultFileName = "rspFile.rsp"

// ErrNoInput is returned when input ends before all answers were given.
var ErrNoInput = errors.New("input ended before all options were answered")

// Options mirrors the bundle command flags.
type Options struct {
	Output           string
	Language         string
	Note             bool
	Sort             string
	RemoveEmptyLines bool
	Author           string
}

// String renders the options as a single bundle command line. The author
// clause is omitted when empty.
func (o Options) String() string {
	parts := []string{
		"bundle",
		"--output", quote(o.Output),
		"--language", quote(o.Language),
		"--note", strconv.FormatBool(o.Note),
		"--sort", quote(o.Sort),
		"--remove-empty-lines", strconv.FormatBool(o.RemoveEmptyLines),
	}
	if o.Author != "" {
		parts = append(parts, "--author", quote(o.Author))
	}
	return strings.Join(parts, " ")
}

// quote wraps values that would otherwise split into several tokens.
func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"") {
		return strconv.Quote(s)
	}
	return s
}

// Write creates or overwrites the response file at path.
func Write(fs billy.Filesystem, path string, o Options) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve response file path: %w", err)
	}
	if err := util.WriteFile(fs, path, []byte(o.String()+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write response file %s: %w", path, err)
	}
	return nil
}
