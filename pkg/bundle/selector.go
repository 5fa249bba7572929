package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mybundle/pkg/exclude"
)

// Select walks c.Root and returns the files to bundle, filtered and sorted.
func Select(fs billy.Filesystem, c Criteria, logger *zap.Logger) ([]FileEntry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	root := filepath.Clean(c.Root)
	info, err := fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access root directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	matcher := exclude.New(c.ExcludeMatch, c.Excludes, logger)
	logger.Debug("Excluding path markers", zap.Strings("markers", matcher.Markers()))
	if c.IgnoreFile != "" {
		if err := matcher.CompilePatternFile(fs, filepath.Join(root, c.IgnoreFile)); err != nil {
			logger.Warn("Failed to load ignore file", zap.String("file", c.IgnoreFile), zap.Error(err))
		}
	}

	extensions, filtered := ResolveExtensions(c.Languages, c.LanguageMatch)
	if filtered {
		logger.Debug("Resolved language filter",
			zap.String("languages", c.Languages),
			zap.Int("extensionCount", len(extensions)))
	}

	logger.Debug("Starting file selection", zap.String("root", root))
	var entries []FileEntry
	err = util.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during selection", zap.String("path", path), zap.Error(err))
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			logger.Warn("Unable to determine relative path", zap.String("path", path), zap.Error(relErr))
			return nil
		}

		if info.IsDir() {
			if matcher.Matches(relPath, true) {
				logger.Debug("Skipping excluded directory", zap.String("directory", path))
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			target, statErr := fs.Stat(path)
			if statErr != nil {
				logger.Warn("Skipping broken symlink", zap.String("path", path), zap.Error(statErr))
				return nil
			}
			if target.IsDir() {
				logger.Debug("Not following directory symlink", zap.String("path", path))
				return nil
			}
			info = target
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if matcher.Matches(relPath, false) {
			logger.Debug("Skipping excluded file", zap.String("filePath", path))
			return nil
		}
		if filtered && !extensions[filepath.Ext(path)] {
			return nil
		}

		entries = append(entries, FileEntry{Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	Sort(entries, c.Sort)
	logger.Debug("Completed file selection", zap.Int("files", len(entries)), zap.Stringer("sort", c.Sort))
	return entries, nil
}

// Sort orders entries in place. Names and extensions compare by the root
// collation, so "apple.py" sorts before "B.cpp", with byte order breaking
// ties. The sort is stable, so entries sharing a base name keep their walk
// order.
func Sort(entries []FileEntry, mode SortMode) {
	col := collate.New(language.Und)
	compare := func(a, b string) int {
		if c := col.CompareString(a, b); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if mode == SortByExtension {
			if c := compare(entries[i].Ext(), entries[j].Ext()); c != 0 {
				return c < 0
			}
		}
		return compare(entries[i].Name(), entries[j].Name()) < 0
	})
}
