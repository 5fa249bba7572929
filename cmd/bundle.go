package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mybundle/pkg/bundle"
)

// One line is printed per outcome.
const (
	existsMsg  = "file name already exists, please choose a different name"
	failureMsg = "error: could not create bundle"
)

type bundleFlags struct {
	output      string
	language    string
	note        bool
	sort        string
	remove      bool
	author      string
	dir         string
	exclude     []string
	keepSources bool
}

func newBundleCmd(a *app) *cobra.Command {
	f := &bundleFlags{}

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Bundle code files to a single file",
		Long: `Bundle concatenates the source files found under the current directory into
one output file. Languages: ` + languageNames() + `, or all.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBundle(cmd, a, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.output, "output", "o", "", "File path and name of the bundle")
	flags.StringVarP(&f.language, "language", "l", "", "Programming languages to include, or \"all\"")
	flags.BoolVarP(&f.note, "note", "n", false, "Write the source path of every file as a comment")
	flags.StringVarP(&f.sort, "sort", "s", "ABC", "Sort by file name (ABC) or by code type (Type)")
	flags.BoolVarP(&f.remove, "remove-empty-lines", "r", false, "Remove empty lines from the code")
	flags.StringVarP(&f.author, "author", "a", "", "Name of the bundle's creator, written on the first line")
	flags.StringVarP(&f.dir, "dir", "d", ".", "Directory to scan")
	flags.StringSliceVarP(&f.exclude, "exclude", "x", nil, "Additional excluded path markers")
	flags.BoolVar(&f.keepSources, "keep-sources", false, "With --remove-empty-lines, leave the source files untouched")
	_ = cmd.MarkFlagRequired("output")
	_ = cmd.MarkFlagRequired("language")

	return cmd
}

func languageNames() string {
	var names []string
	for _, l := range bundle.Languages() {
		names = append(names, l.Name)
	}
	return strings.Join(names, ", ")
}

func runBundle(cmd *cobra.Command, a *app, f *bundleFlags) error {
	sortMode, err := bundle.ParseSortMode(f.sort)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	logger := a.logger()
	out := cmd.OutOrStdout()

	root, err := filepath.Abs(f.dir)
	if err != nil {
		return fmt.Errorf("failed to resolve directory %s: %w", f.dir, err)
	}
	output, err := filepath.Abs(f.output)
	if err != nil {
		return fmt.Errorf("failed to resolve output %s: %w", f.output, err)
	}

	switch err := bundle.CheckOutput(a.fs, output); {
	case errors.Is(err, bundle.ErrOutputExists):
		fmt.Fprintln(out, existsMsg)
		return nil
	case err != nil:
		logger.Error("Output file cannot be created", zap.String("outputFile", output), zap.Error(err))
		fmt.Fprintln(out, failureMsg)
		return nil
	}

	files, err := bundle.Select(a.fs, bundle.Criteria{
		Root:          root,
		Excludes:      append(append([]string(nil), a.cfg.Exclude...), f.exclude...),
		ExcludeMatch:  a.cfg.ExcludeMode(),
		IgnoreFile:    a.cfg.IgnoreFile,
		Languages:     f.language,
		LanguageMatch: a.cfg.LanguageMode(),
		Sort:          sortMode,
	}, logger)
	if err != nil {
		logger.Error("Failed to select files", zap.String("directory", root), zap.Error(err))
		fmt.Fprintln(out, failureMsg)
		return nil
	}

	err = bundle.Bundle(a.fs, files, bundle.Options{
		OutputPath:       output,
		Note:             f.note,
		RemoveEmptyLines: f.remove,
		KeepSources:      f.keepSources,
		Author:           f.author,
	}, logger)
	switch {
	case errors.Is(err, bundle.ErrOutputExists):
		fmt.Fprintln(out, existsMsg)
	case err != nil:
		logger.Error("Failed to create bundle", zap.String("outputFile", output), zap.Error(err))
		fmt.Fprintln(out, failureMsg)
	default:
		fmt.Fprintf(out, "bundle created: %s\n", f.output)
	}
	return nil
}
