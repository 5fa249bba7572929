// Package exclude decides which paths of a scanned tree are left out of a bundle.
package exclude

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

// Mode selects how excluded markers are compared against a path.
type Mode string

const (
	// ModeSubstring excludes a path when it contains a marker anywhere.
	ModeSubstring Mode = "substring"
	// ModeSegment excludes a path only when one of its segments equals a marker.
	ModeSegment Mode = "segment"
)

// DefaultMarkers are the build output, debug output, dependency cache,
// version control and editor directories skipped by default.
var DefaultMarkers = []string{"bin", "Debug", "node_modules", ".git", ".vscode"}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSubstring, ModeSegment:
		return Mode(s), nil
	case "":
		return ModeSubstring, nil
	default:
		return "", fmt.Errorf("unknown exclude match mode %q (want %q or %q)", s, ModeSubstring, ModeSegment)
	}
}

// Pattern is a compiled ignore-file line.
type Pattern struct {
	Pattern *regexp.Regexp // Compiled expression.
	Negate  bool           // Line started with '!'.
	Line    string         // Original line.
	LineNo  int            // 1-based line number in its source.
}

// Matcher combines marker exclusion with gitignore-style patterns.
type Matcher struct {
	mode     Mode
	markers  []string
	patterns []*Pattern
	logger   *zap.Logger
}

// New builds a Matcher for the given markers.
func New(mode Mode, markers []string, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mode == "" {
		mode = ModeSubstring
	}
	kept := make([]string, 0, len(markers))
	for _, m := range markers {
		if m != "" {
			kept = append(kept, m)
		}
	}
	return &Matcher{
		mode:    mode,
		markers: kept,
		logger:  logger,
	}
}

// Markers returns the active markers.
func (m *Matcher) Markers() []string {
	return append([]string(nil), m.markers...)
}

// CompilePatternLines adds ignore patterns. Invalid lines are logged and skipped.
func (m *Matcher) CompilePatternLines(lines ...string) {
	for i, line := range lines {
		re, negate, err := compileLine(line)
		if err != nil {
			m.logger.Warn("Invalid ignore pattern",
				zap.String("pattern", line),
				zap.Int("lineNo", i+1),
				zap.Error(err))
			continue
		}
		if re == nil {
			continue
		}
		p := &Pattern{
			Pattern: re,
			Negate:  negate,
			Line:    line,
			LineNo:  i + 1,
		}
		m.patterns = append(m.patterns, p)
		m.logger.Debug("Compiled ignore pattern",
			zap.Int("lineNo", p.LineNo),
			zap.String("pattern", p.Line),
			zap.Bool("negate", p.Negate))
	}
}

// CompilePatternFile reads an ignore file from fs. A missing file is not an error.
func (m *Matcher) CompilePatternFile(fs billy.Filesystem, filePath string) error {
	content, err := util.ReadFile(fs, filePath)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Debug("Ignore file not present", zap.String("filePath", filePath))
			return nil
		}
		return fmt.Errorf("failed to read ignore file %s: %w", filePath, err)
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	m.CompilePatternLines(lines...)
	m.logger.Debug("Loaded ignore file",
		zap.String("filePath", filePath),
		zap.Int("patternCount", len(m.patterns)))
	return nil
}

// Matches reports whether relPath, relative to the scan root, is excluded.
func (m *Matcher) Matches(relPath string, isDir bool) bool {
	p := normalizePath(relPath, isDir)
	if p == "" {
		return false
	}
	if marker, ok := m.matchesMarker(p); ok {
		m.logger.Debug("Path matches excluded marker", zap.String("path", p), zap.String("marker", marker))
		return true
	}
	matched, _ := m.MatchesPattern(relPath, isDir)
	return matched
}

// MatchesPattern checks the ignore patterns only and returns the last
// pattern that decided the outcome.
func (m *Matcher) MatchesPattern(relPath string, isDir bool) (bool, *Pattern) {
	p := normalizePath(relPath, isDir)

	matched := false
	var decided *Pattern
	for _, pattern := range m.patterns {
		if pattern.Pattern.MatchString(p) {
			matched = !pattern.Negate
			decided = pattern
		}
	}
	return matched, decided
}

func (m *Matcher) matchesMarker(p string) (string, bool) {
	switch m.mode {
	case ModeSegment:
		for _, segment := range strings.Split(strings.TrimSuffix(p, "/"), "/") {
			for _, marker := range m.markers {
				if segment == marker {
					return marker, true
				}
			}
		}
	default:
		trimmed := strings.TrimSuffix(p, "/")
		for _, marker := range m.markers {
			if strings.Contains(trimmed, marker) {
				return marker, true
			}
		}
	}
	return "", false
}

// normalizePath converts to forward slashes and marks directories with a
// trailing slash.
func normalizePath(p string, isDir bool) string {
	p = path.Clean(filepath.ToSlash(p))
	if p == "." {
		return ""
	}
	if isDir && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
