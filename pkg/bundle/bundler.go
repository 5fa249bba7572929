package bundle

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

const (
	separatorPrefix = "-----------------"
	separatorSuffix = "---------------"
	authorPrefix    = "//name: "
	sourcePrefix    = "//source: "
)

// Bundle writes files, in order, into a new file at opts.OutputPath.
//
// The output must not exist; ErrOutputExists is returned before anything is
// touched otherwise. A failure part way through leaves the partial output in
// place. Failures are returned, not logged.
func Bundle(fs billy.Filesystem, files []FileEntry, opts Options, logger *zap.Logger) (err error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	output, err := filepath.Abs(opts.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to resolve output path: %w", err)
	}

	if err := CheckOutput(fs, output); err != nil {
		return err
	}

	out, err := fs.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", output, err)
	}

	writer := bufio.NewWriter(out)
	defer func() {
		if flushErr := writer.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("failed to flush output: %w", flushErr)
		}
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	if opts.Author != "" {
		if _, err := writer.WriteString(authorPrefix + opts.Author + "\n"); err != nil {
			return fmt.Errorf("failed to write author line: %w", err)
		}
	}

	for _, entry := range files {
		if err := writeSection(fs, writer, output, entry, opts, logger); err != nil {
			return err
		}
	}

	logger.Info("Bundle written",
		zap.String("outputFile", output),
		zap.Int("totalFiles", len(files)))
	return nil
}

// CheckOutput verifies that output does not exist yet and that its
// directory does. It reports ErrOutputExists or ErrDirectoryNotFound.
func CheckOutput(fs billy.Filesystem, output string) error {
	if _, err := fs.Stat(output); err == nil {
		return fmt.Errorf("%w: %s", ErrOutputExists, output)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check output file %s: %w", output, err)
	}

	dir := filepath.Dir(output)
	info, err := fs.Stat(dir)
	switch {
	case err == nil && !info.IsDir(), os.IsNotExist(err):
		return fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	case err != nil:
		return fmt.Errorf("failed to check output directory %s: %w", dir, err)
	}
	return nil
}

// writeSection writes the separator, the optional source line and the
// contents of one file.
func writeSection(fs billy.Filesystem, w io.Writer, output string, entry FileEntry, opts Options, logger *zap.Logger) error {
	if _, err := fmt.Fprintf(w, "%s%s%s\n", separatorPrefix, entry.Name(), separatorSuffix); err != nil {
		return fmt.Errorf("failed to write separator for %s: %w", entry.Path, err)
	}

	if opts.Note {
		// Relative to the output file path itself, not its directory.
		rel, err := filepath.Rel(output, entry.Path)
		if err != nil {
			logger.Warn("Unable to determine relative source path, using absolute path",
				zap.String("filePath", entry.Path),
				zap.Error(err))
			rel = entry.Path
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", sourcePrefix, rel); err != nil {
			return fmt.Errorf("failed to write source line for %s: %w", entry.Path, err)
		}
	}

	content, err := util.ReadFile(fs, entry.Path)
	if err != nil {
		return fmt.Errorf("error reading file %s: %w", entry.Path, err)
	}

	if looksBinary(content) {
		logger.Warn("Bundling a file that looks binary", zap.String("filePath", entry.Path))
	}

	if opts.RemoveEmptyLines {
		stripped := StripEmptyLines(content)
		if !opts.KeepSources && !bytes.Equal(stripped, content) {
			if err := rewriteSource(fs, entry.Path, stripped); err != nil {
				return err
			}
			logger.Debug("Removed empty lines from source file",
				zap.String("filePath", entry.Path),
				zap.Int("removedBytes", len(content)-len(stripped)))
		}
		content = stripped
	}

	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("failed to write contents of %s: %w", entry.Path, err)
	}
	return nil
}

// rewriteSource replaces a source file's contents, keeping its permissions.
func rewriteSource(fs billy.Filesystem, path string, content []byte) error {
	perm := os.FileMode(0o644)
	if info, err := fs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := util.WriteFile(fs, path, content, perm); err != nil {
		return fmt.Errorf("failed to rewrite source file %s: %w", path, err)
	}
	return nil
}
